package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"tabscope/adapters/aggregation"
	"tabscope/adapters/classifier"
	"tabscope/adapters/summary"
	"tabscope/domain/chart"
	"tabscope/domain/profile"
	"tabscope/domain/run"
	"tabscope/domain/table"
	"tabscope/internal"
	"tabscope/ports"
)

// ProfileService composes type inference, summary statistics and
// aggregation behind the entry points used by the HTTP and CLI shells.
type ProfileService struct {
	classifier  ports.ClassifierPort
	summary     *summary.SummaryEngine
	aggregation *aggregation.AggregationEngine
	defaults    ChartDefaults
	workers     int
	logger      *internal.Logger
}

// ChartDefaults fill aggregation parameters a request leaves at zero
type ChartDefaults struct {
	HistogramBins int
	TopN          int
}

// ColumnDescriptor is the classified view of one column
type ColumnDescriptor struct {
	Name         string             `json:"name"`
	Type         profile.ColumnType `json:"type"`
	NonNullCount int                `json:"non_null_count"`
	MissingCount int                `json:"missing_count"`
}

// ProfileServiceOption configures a ProfileService
type ProfileServiceOption func(*ProfileService)

// WithWorkers bounds how many columns are summarized concurrently
func WithWorkers(n int) ProfileServiceOption {
	return func(s *ProfileService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithChartDefaults sets the bins and top-N used when a request omits them
func WithChartDefaults(d ChartDefaults) ProfileServiceOption {
	return func(s *ProfileService) {
		s.defaults = d
	}
}

// WithLogger sets the service logger
func WithLogger(l *internal.Logger) ProfileServiceOption {
	return func(s *ProfileService) {
		if l != nil {
			s.logger = l.With("ProfileService")
		}
	}
}

// NewProfileService creates a profile service
func NewProfileService(opts ...ProfileServiceOption) *ProfileService {
	c := classifier.NewTypeClassifier()
	s := &ProfileService{
		classifier:  c,
		summary:     summary.NewSummaryEngine(c),
		aggregation: aggregation.NewAggregationEngine(c),
		defaults: ChartDefaults{
			HistogramBins: chart.DefaultBinCount,
			TopN:          chart.DefaultTopN,
		},
		workers: 1,
		logger:  internal.DefaultLogger.With("ProfileService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.ProfilerPort   = (*ProfileService)(nil)
	_ ports.AggregatorPort = (*ProfileService)(nil)
	_ ports.ClassifierPort = (*classifier.TypeClassifier)(nil)
)

// Profile computes the report for t synchronously
func (s *ProfileService) Profile(t *table.Table) profile.Report {
	return s.summary.Profile(t)
}

// ProfileRun profiles t and wraps the report with run metadata. Column
// summaries are computed by up to workers goroutines; each writes only its
// own slot so the report matches the sequential one exactly.
func (s *ProfileService) ProfileRun(ctx context.Context, source string, t *table.Table) (*run.ProfileRun, error) {
	start := time.Now()
	cols := t.Columns()
	types := make([]profile.ColumnType, len(cols))
	summaries := make([]profile.ColumnSummary, len(cols))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range cols {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			types[i] = s.classifier.Classify(cols[i])
			summaries[i] = s.summary.SummarizeColumn(cols[i], types[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", source, err)
	}

	report := s.summary.Assemble(t, types, summaries)
	elapsed := time.Since(start)

	s.logger.Info("profiled %s: %d rows, %d columns, %d missing cells, %d duplicate rows in %s",
		source, report.Dataset.RowCount, report.Dataset.ColumnCount,
		report.Dataset.MissingCellCount, report.Dataset.DuplicateRowCount, elapsed)

	return run.NewProfileRun(source, t, report, elapsed.Milliseconds()), nil
}

// Aggregate runs the aggregation for req.Kind, applying configured defaults
func (s *ProfileService) Aggregate(t *table.Table, req chart.Request) (*chart.Result, error) {
	if req.Bins == 0 {
		req.Bins = s.defaults.HistogramBins
	}
	if req.TopN == 0 {
		req.TopN = s.defaults.TopN
	}

	result, err := s.aggregation.Aggregate(t, req)
	if err != nil {
		s.logger.Debug("%s aggregation rejected: %v", req.Kind, err)
		return nil, err
	}
	return result, nil
}

// Columns describes every column with its inferred type
func (s *ProfileService) Columns(t *table.Table) []ColumnDescriptor {
	types := s.classifier.ClassifyTable(t)
	out := make([]ColumnDescriptor, 0, t.NumColumns())
	for i, col := range t.Columns() {
		missing := col.MissingCount()
		out = append(out, ColumnDescriptor{
			Name:         col.Name,
			Type:         types[i],
			NonNullCount: col.Len() - missing,
			MissingCount: missing,
		})
	}
	return out
}

// NumericColumns lists the columns inferred as numeric
func (s *ProfileService) NumericColumns(t *table.Table) []string {
	return s.classifier.NumericColumns(t)
}

// Load reads a table from src and logs its shape
func (s *ProfileService) Load(ctx context.Context, src ports.TableSourcePort) (*table.Table, error) {
	t, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	s.logger.Debug("loaded %s: %d rows x %d columns", src.Name(), t.NumRows(), t.NumColumns())
	return t, nil
}

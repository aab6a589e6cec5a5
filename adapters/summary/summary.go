package summary

import (
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"tabscope/adapters/classifier"
	"tabscope/domain/profile"
	"tabscope/domain/table"
)

// SummaryEngine computes dataset- and column-level descriptive statistics
type SummaryEngine struct {
	classifier *classifier.TypeClassifier
}

// NewSummaryEngine creates a summary engine
func NewSummaryEngine(c *classifier.TypeClassifier) *SummaryEngine {
	if c == nil {
		c = classifier.NewTypeClassifier()
	}
	return &SummaryEngine{classifier: c}
}

// Profile classifies every column and builds the full report
func (e *SummaryEngine) Profile(t *table.Table) profile.Report {
	cols := t.Columns()
	types := e.classifier.ClassifyTable(t)

	summaries := make([]profile.ColumnSummary, len(cols))
	for i, col := range cols {
		summaries[i] = e.SummarizeColumn(col, types[i])
	}

	return e.Assemble(t, types, summaries)
}

// Assemble builds a report from precomputed column types and summaries,
// both in table column order.
func (e *SummaryEngine) Assemble(t *table.Table, types []profile.ColumnType, summaries []profile.ColumnSummary) profile.Report {
	cols := t.Columns()
	report := profile.Report{
		Dataset:     e.summarizeDataset(t, types),
		Columns:     make(map[string]profile.ColumnSummary, len(cols)),
		ColumnOrder: t.ColumnNames(),
		Info:        make([]profile.ColumnInfo, len(cols)),
	}

	for i, col := range cols {
		report.Columns[col.Name] = summaries[i]
		missing := col.MissingCount()
		report.Info[i] = profile.ColumnInfo{
			Name:         col.Name,
			Type:         types[i],
			NonNullCount: col.Len() - missing,
			MissingCount: missing,
		}
	}

	return report
}

// SummarizeDataset computes row, column, missing-cell and duplicate-row counts
func (e *SummaryEngine) SummarizeDataset(t *table.Table) profile.DatasetSummary {
	return e.summarizeDataset(t, e.classifier.ClassifyTable(t))
}

func (e *SummaryEngine) summarizeDataset(t *table.Table, types []profile.ColumnType) profile.DatasetSummary {
	cols := t.Columns()

	missing := 0
	for _, col := range cols {
		missing += col.MissingCount()
	}

	return profile.DatasetSummary{
		RowCount:          t.NumRows(),
		ColumnCount:       t.NumColumns(),
		MissingCellCount:  missing,
		DuplicateRowCount: countDuplicateRows(cols, types, t.NumRows()),
	}
}

// countDuplicateRows counts rows whose normalized tuple was seen at an earlier row.
func countDuplicateRows(cols []table.Column, types []profile.ColumnType, rows int) int {
	if len(cols) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, rows)
	duplicates := 0
	var key strings.Builder

	for i := 0; i < rows; i++ {
		key.Reset()
		for j, col := range cols {
			cell := classifier.Normalize(col.Values[i], types[j])
			key.WriteString(strconv.Itoa(len(cell)))
			key.WriteByte(':')
			key.WriteString(cell)
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			duplicates++
			continue
		}
		seen[k] = struct{}{}
	}

	return duplicates
}

// SummarizeColumn computes the summary matching the column's type
func (e *SummaryEngine) SummarizeColumn(col table.Column, typ profile.ColumnType) profile.ColumnSummary {
	if typ == profile.TypeNumeric {
		return profile.ColumnSummary{Type: typ, Numeric: summarizeNumeric(col)}
	}
	return profile.ColumnSummary{Type: typ, Categorical: summarizeCategorical(col, typ)}
}

func summarizeNumeric(col table.Column) *profile.NumericSummary {
	values := NumericValues(col)
	summary := &profile.NumericSummary{Count: len(values)}
	if len(values) == 0 {
		return summary
	}

	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	std := 0.0
	if len(values) > 1 {
		std, _ = stats.StandardDeviationSample(values)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	summary.Mean = profile.Float(mean)
	summary.Std = profile.Float(std)
	summary.Min = profile.Float(min)
	summary.Q1 = profile.Float(Quantile(sorted, 0.25))
	summary.Median = profile.Float(Quantile(sorted, 0.5))
	summary.Q3 = profile.Float(Quantile(sorted, 0.75))
	summary.Max = profile.Float(max)
	return summary
}

func summarizeCategorical(col table.Column, typ profile.ColumnType) *profile.CategoricalSummary {
	freq := make(map[string]int)
	var order []string
	count := 0

	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		count++
		key := classifier.Normalize(v, typ)
		if _, ok := freq[key]; !ok {
			order = append(order, key)
		}
		freq[key]++
	}

	summary := &profile.CategoricalSummary{Count: count, UniqueCount: len(order)}

	// Strict > keeps the first-encountered value on ties
	for _, key := range order {
		if freq[key] > summary.TopFrequency {
			top := key
			summary.TopValue = &top
			summary.TopFrequency = freq[key]
		}
	}

	return summary
}

// NumericValues returns the present numeric cells of a column in row order
func NumericValues(col table.Column) []float64 {
	values := make([]float64, 0, len(col.Values))
	for _, v := range col.Values {
		if f, ok := classifier.ParseNumeric(v); ok {
			values = append(values, f)
		}
	}
	return values
}

package aggregation

import (
	"fmt"

	"tabscope/adapters/classifier"
	"tabscope/domain/chart"
	"tabscope/domain/core"
	"tabscope/domain/profile"
	"tabscope/domain/table"
)

// AggregationEngine derives chart-ready datasets from a table. Every method is
// a pure function of its arguments; the table is only read.
type AggregationEngine struct {
	classifier *classifier.TypeClassifier
}

// NewAggregationEngine creates an aggregation engine
func NewAggregationEngine(c *classifier.TypeClassifier) *AggregationEngine {
	if c == nil {
		c = classifier.NewTypeClassifier()
	}
	return &AggregationEngine{classifier: c}
}

// Aggregate dispatches a request to the aggregation for its chart kind
func (e *AggregationEngine) Aggregate(t *table.Table, req chart.Request) (*chart.Result, error) {
	result := &chart.Result{Kind: req.Kind}

	switch req.Kind {
	case chart.KindBar:
		if err := requireColumns(req, "x", "y"); err != nil {
			return nil, err
		}
		gm, err := e.GroupMeans(t, req.X, req.Y)
		if err != nil {
			return nil, err
		}
		result.GroupMeans = gm

	case chart.KindHistogram:
		if err := requireColumns(req, "y"); err != nil {
			return nil, err
		}
		h, err := e.Histogram(t, req.Y, req.Bins)
		if err != nil {
			return nil, err
		}
		result.Histogram = h

	case chart.KindPie:
		if err := requireColumns(req, "x"); err != nil {
			return nil, err
		}
		top, err := e.TopNFrequency(t, req.X, req.TopN)
		if err != nil {
			return nil, err
		}
		result.TopN = top

	case chart.KindHeatmap:
		cols := req.Columns
		if len(cols) == 0 {
			cols = e.classifier.NumericColumns(t)
		}
		m, err := e.CorrelationMatrix(t, cols)
		if err != nil {
			return nil, err
		}
		result.Correlation = m

	case chart.KindLine, chart.KindScatter:
		if err := requireColumns(req, "x", "y"); err != nil {
			return nil, err
		}
		s, err := e.PairedSeries(t, req.X, req.Y)
		if err != nil {
			return nil, err
		}
		result.Series = s

	case chart.KindDashboard:
		cols := req.Columns
		if len(cols) == 0 {
			cols = e.classifier.NumericColumns(t)
		}
		gm, err := e.ColumnMeans(t, cols)
		if err != nil {
			return nil, err
		}
		result.GroupMeans = gm

	default:
		return nil, core.NewInvalidArgumentError("kind", fmt.Sprintf("%q is not a chart kind", req.Kind))
	}

	return result, nil
}

func requireColumns(req chart.Request, fields ...string) error {
	for _, f := range fields {
		switch {
		case f == "x" && req.X == "":
			return core.NewInvalidArgumentError("x", fmt.Sprintf("is required for %s charts", req.Kind))
		case f == "y" && req.Y == "":
			return core.NewInvalidArgumentError("y", fmt.Sprintf("is required for %s charts", req.Kind))
		}
	}
	return nil
}

// column resolves a column and its inferred type
func (e *AggregationEngine) column(t *table.Table, name string) (table.Column, profile.ColumnType, error) {
	col, err := t.Column(name)
	if err != nil {
		return table.Column{}, "", err
	}
	return col, e.classifier.Classify(col), nil
}

// numericColumn resolves a column that must classify as Numeric
func (e *AggregationEngine) numericColumn(t *table.Table, name string) (table.Column, error) {
	col, typ, err := e.column(t, name)
	if err != nil {
		return table.Column{}, err
	}
	if typ != profile.TypeNumeric {
		return table.Column{}, core.NewNotNumericError(name)
	}
	return col, nil
}

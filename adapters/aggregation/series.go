package aggregation

import (
	"tabscope/domain/chart"
	"tabscope/domain/table"
)

// PairedSeries returns both columns' cells aligned by row index. Absent cells
// are kept in place; skipping them is left to the renderer.
func (e *AggregationEngine) PairedSeries(t *table.Table, xCol, yCol string) (*chart.PairedSeries, error) {
	x, err := t.Column(xCol)
	if err != nil {
		return nil, err
	}
	y, err := t.Column(yCol)
	if err != nil {
		return nil, err
	}

	xs := make([]table.Value, len(x.Values))
	copy(xs, x.Values)
	ys := make([]table.Value, len(y.Values))
	copy(ys, y.Values)

	return &chart.PairedSeries{XValues: xs, YValues: ys}, nil
}

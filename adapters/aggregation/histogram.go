package aggregation

import (
	"math"

	"github.com/montanaflynn/stats"

	"tabscope/adapters/summary"
	"tabscope/domain/chart"
	"tabscope/domain/core"
	"tabscope/domain/table"
)

// Histogram bins the present values of valueCol into binCount equal-width
// bins over [min, max]. Bins are half-open except the last, which is closed.
// binCount 0 selects chart.DefaultBinCount. When min == max a single bin holds
// every value; with no present values the histogram is empty.
func (e *AggregationEngine) Histogram(t *table.Table, valueCol string, binCount int) (*chart.Histogram, error) {
	if binCount < 0 {
		return nil, core.NewInvalidArgumentError("bins", "must be positive")
	}
	if binCount == 0 {
		binCount = chart.DefaultBinCount
	}

	col, err := e.numericColumn(t, valueCol)
	if err != nil {
		return nil, err
	}

	values := summary.NumericValues(col)
	if len(values) == 0 {
		return &chart.Histogram{BinEdges: []float64{}, Counts: []int{}}, nil
	}

	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)

	if lo == hi {
		return &chart.Histogram{BinEdges: []float64{lo, hi}, Counts: []int{len(values)}}, nil
	}

	edges := make([]float64, binCount+1)
	width := (hi - lo) / float64(binCount)
	edges[0] = lo
	for i := 1; i < binCount; i++ {
		if math.IsInf(width, 0) {
			f := float64(i) / float64(binCount)
			edges[i] = lo*(1-f) + hi*f
			continue
		}
		edges[i] = lo + float64(i)*width
	}
	edges[binCount] = hi

	counts := make([]int, binCount)
	for _, v := range values {
		counts[binIndex(v, edges)]++
	}

	return &chart.Histogram{BinEdges: edges, Counts: counts}, nil
}

// binIndex finds the bin for v, correcting the arithmetic guess against the
// stored edges so that floating-point rounding never misplaces a value.
func binIndex(v float64, edges []float64) int {
	bins := len(edges) - 1
	lo, hi := edges[0], edges[bins]

	// halving keeps the span finite for values near ±MaxFloat64
	pos := (v/2 - lo/2) / (hi/2 - lo/2) * float64(bins)
	if math.IsNaN(pos) {
		pos = 0
	}
	idx := int(math.Floor(pos))
	if idx < 0 {
		idx = 0
	}
	if idx >= bins {
		return bins - 1
	}
	for idx > 0 && v < edges[idx] {
		idx--
	}
	for idx < bins-1 && v >= edges[idx+1] {
		idx++
	}
	return idx
}

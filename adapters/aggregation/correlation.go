package aggregation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"tabscope/adapters/classifier"
	"tabscope/adapters/summary"
	"tabscope/domain/chart"
	"tabscope/domain/core"
	"tabscope/domain/profile"
	"tabscope/domain/table"
)

// CorrelationMatrix computes pairwise Pearson correlation between the named
// numeric columns over rows where both cells are present. Each unordered pair
// is computed once and mirrored. Undefined correlations (fewer than two
// paired rows, or zero variance) are nil; the diagonal is 1 for every column
// with non-zero variance.
func (e *AggregationEngine) CorrelationMatrix(t *table.Table, numericCols []string) (*chart.CorrelationMatrix, error) {
	if len(numericCols) < 2 {
		return nil, core.NewInsufficientColumnsError(len(numericCols))
	}

	cols := make([]table.Column, len(numericCols))
	for i, name := range numericCols {
		col, err := e.numericColumn(t, name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}

	n := len(cols)
	matrix := make([][]*float64, n)
	for i := range matrix {
		matrix[i] = make([]*float64, n)
	}

	for i := 0; i < n; i++ {
		matrix[i][i] = selfCorrelation(cols[i])
		for j := i + 1; j < n; j++ {
			r := pearson(cols[i], cols[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	names := make([]string, n)
	copy(names, numericCols)
	return &chart.CorrelationMatrix{ColumnNames: names, Matrix: matrix}, nil
}

func selfCorrelation(col table.Column) *float64 {
	values := summary.NumericValues(col)
	if len(values) < 2 || stat.Variance(values, nil) == 0 {
		return nil
	}
	return profile.Float(1.0)
}

func pearson(a, b table.Column) *float64 {
	var xs, ys []float64
	for i := range a.Values {
		x, okX := classifier.ParseNumeric(a.Values[i])
		y, okY := classifier.ParseNumeric(b.Values[i])
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return nil
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	// Clamp floating-point overshoot
	r = math.Max(-1, math.Min(1, r))
	return profile.Float(r)
}

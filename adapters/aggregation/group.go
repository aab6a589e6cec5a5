package aggregation

import (
	"github.com/montanaflynn/stats"

	"tabscope/adapters/classifier"
	"tabscope/adapters/summary"
	"tabscope/domain/chart"
	"tabscope/domain/profile"
	"tabscope/domain/table"
)

// GroupMeans computes the mean of valueCol for each distinct groupByCol value,
// in first-encountered group order. Rows with an absent group key are skipped;
// absent values are left out of their group's mean, and a group with no
// present values gets a nil mean.
func (e *AggregationEngine) GroupMeans(t *table.Table, groupByCol, valueCol string) (*chart.GroupMeans, error) {
	keys, keyType, err := e.column(t, groupByCol)
	if err != nil {
		return nil, err
	}
	values, err := e.numericColumn(t, valueCol)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var labels []string
	var groups [][]float64

	for i, k := range keys.Values {
		if k.IsMissing() {
			continue
		}
		key := classifier.Normalize(k, keyType)
		g, ok := index[key]
		if !ok {
			g = len(labels)
			index[key] = g
			labels = append(labels, classifier.Label(k, keyType))
			groups = append(groups, nil)
		}
		if f, ok := classifier.ParseNumeric(values.Values[i]); ok {
			groups[g] = append(groups[g], f)
		}
	}

	means := make([]*float64, len(groups))
	for g := range groups {
		means[g] = mean(groups[g])
	}
	if labels == nil {
		labels = []string{}
	}
	return &chart.GroupMeans{Labels: labels, Values: means}, nil
}

// ColumnMeans computes the mean of each named numeric column, labelled by
// column name.
func (e *AggregationEngine) ColumnMeans(t *table.Table, cols []string) (*chart.GroupMeans, error) {
	result := &chart.GroupMeans{
		Labels: make([]string, 0, len(cols)),
		Values: make([]*float64, 0, len(cols)),
	}
	for _, name := range cols {
		col, err := e.numericColumn(t, name)
		if err != nil {
			return nil, err
		}
		result.Labels = append(result.Labels, name)
		result.Values = append(result.Values, mean(summary.NumericValues(col)))
	}
	return result, nil
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	return profile.Float(m)
}

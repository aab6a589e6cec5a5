package aggregation

import (
	"sort"

	"tabscope/adapters/classifier"
	"tabscope/domain/chart"
	"tabscope/domain/core"
	"tabscope/domain/table"
)

// TopNFrequency counts each distinct value of col, absent cells included as
// their own category, and returns the n most frequent by descending count.
// Ties keep first-encountered order. n 0 selects chart.DefaultTopN.
func (e *AggregationEngine) TopNFrequency(t *table.Table, col string, n int) (*chart.TopNFrequency, error) {
	if n < 0 {
		return nil, core.NewInvalidArgumentError("top", "must be positive")
	}
	if n == 0 {
		n = chart.DefaultTopN
	}

	c, typ, err := e.column(t, col)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		label string
		count int
	}
	index := make(map[string]int)
	var buckets []bucket

	for _, v := range c.Values {
		key := classifier.Normalize(v, typ)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, bucket{label: classifier.Label(v, typ)})
		}
		buckets[i].count++
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].count > buckets[j].count
	})
	if len(buckets) > n {
		buckets = buckets[:n]
	}

	result := &chart.TopNFrequency{
		Labels: make([]string, len(buckets)),
		Counts: make([]int, len(buckets)),
	}
	for i, b := range buckets {
		result.Labels[i] = b.label
		result.Counts[i] = b.count
	}
	return result, nil
}

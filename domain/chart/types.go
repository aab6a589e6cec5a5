package chart

import (
	"fmt"
	"strings"

	"tabscope/domain/table"
)

// Kind names the chart an aggregation feeds
type Kind string

const (
	KindBar       Kind = "bar"
	KindHistogram Kind = "histogram"
	KindPie       Kind = "pie"
	KindHeatmap   Kind = "heatmap"
	KindLine      Kind = "line"
	KindScatter   Kind = "scatter"
	KindDashboard Kind = "dashboard"
)

// Defaults used when a request leaves the parameter at zero
const (
	DefaultBinCount = 20
	DefaultTopN     = 10
)

// AllKinds lists the supported chart kinds
func AllKinds() []Kind {
	return []Kind{KindBar, KindHistogram, KindPie, KindHeatmap, KindLine, KindScatter, KindDashboard}
}

// ParseKind parses a chart kind name
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart kind %q", s)
}

// Request carries every parameter an aggregation needs. Which fields are
// read depends on Kind:
//   - bar:       X (group by), Y (value)
//   - histogram: Y (value), Bins
//   - pie:       X, TopN
//   - heatmap:   Columns
//   - line, scatter: X, Y
//   - dashboard: Columns
type Request struct {
	Kind    Kind     `json:"kind" form:"kind" binding:"required"`
	X       string   `json:"x,omitempty" form:"x"`
	Y       string   `json:"y,omitempty" form:"y"`
	Columns []string `json:"columns,omitempty" form:"columns"`
	Bins    int      `json:"bins,omitempty" form:"bins"`
	TopN    int      `json:"top_n,omitempty" form:"top"`
}

// Result is a tagged union over chart kinds; exactly one payload is set.
type Result struct {
	Kind        Kind               `json:"kind"`
	GroupMeans  *GroupMeans        `json:"group_means,omitempty"`
	Histogram   *Histogram         `json:"histogram,omitempty"`
	TopN        *TopNFrequency     `json:"top_n,omitempty"`
	Correlation *CorrelationMatrix `json:"correlation,omitempty"`
	Series      *PairedSeries      `json:"series,omitempty"`
}

// GroupMeans feeds bar charts. A nil value means the group had no present values.
type GroupMeans struct {
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
}

// Histogram has len(BinEdges) == len(Counts)+1 unless empty
type Histogram struct {
	BinEdges []float64 `json:"bin_edges"`
	Counts   []int     `json:"counts"`
}

// Total returns the number of values across all bins
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// TopNFrequency feeds pie charts
type TopNFrequency struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// CorrelationMatrix feeds heatmaps. Undefined correlations are nil.
type CorrelationMatrix struct {
	ColumnNames []string     `json:"column_names"`
	Matrix      [][]*float64 `json:"matrix"`
}

// At returns the correlation between columns i and j
func (m *CorrelationMatrix) At(i, j int) (float64, bool) {
	if m.Matrix[i][j] == nil {
		return 0, false
	}
	return *m.Matrix[i][j], true
}

// PairedSeries feeds line and scatter charts. Absent cells stay in place.
type PairedSeries struct {
	XValues []table.Value `json:"x_values"`
	YValues []table.Value `json:"y_values"`
}

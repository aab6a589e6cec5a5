package profile

import "math"

// ColumnType represents the inferred semantic type of a column
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeBoolean     ColumnType = "boolean"
	TypeCategorical ColumnType = "categorical"
)

// Report is the immutable profile of one table
type Report struct {
	Dataset     DatasetSummary           `json:"dataset"`
	Columns     map[string]ColumnSummary `json:"columns"`
	ColumnOrder []string                 `json:"column_order"`
	Info        []ColumnInfo             `json:"info"`
}

// DatasetSummary contains table-level metrics
type DatasetSummary struct {
	RowCount          int `json:"row_count"`
	ColumnCount       int `json:"column_count"`
	MissingCellCount  int `json:"missing_cell_count"`
	DuplicateRowCount int `json:"duplicate_row_count"`
}

// ColumnInfo is the per-column dtype / non-null listing
type ColumnInfo struct {
	Name         string     `json:"name"`
	Type         ColumnType `json:"type"`
	NonNullCount int        `json:"non_null_count"`
	MissingCount int        `json:"missing_count"`
}

// ColumnSummary is a tagged union; exactly one of Numeric or Categorical is set.
type ColumnSummary struct {
	Type        ColumnType          `json:"type"`
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
}

// NumericSummary contains describe()-style statistics. All float fields are
// nil when Count is zero.
type NumericSummary struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q1     *float64 `json:"q1"`
	Median *float64 `json:"median"`
	Q3     *float64 `json:"q3"`
	Max    *float64 `json:"max"`
}

// CategoricalSummary contains statistics for categorical and boolean columns
type CategoricalSummary struct {
	Count        int     `json:"count"`
	UniqueCount  int     `json:"unique_count"`
	TopValue     *string `json:"top_value"`
	TopFrequency int     `json:"top_frequency"`
}

// IsEmpty reports the EmptySeries condition: no present values to summarize.
func (s ColumnSummary) IsEmpty() bool {
	switch {
	case s.Numeric != nil:
		return s.Numeric.Count == 0
	case s.Categorical != nil:
		return s.Categorical.Count == 0
	}
	return true
}

// Column returns the summary for a column name
func (r *Report) Column(name string) (ColumnSummary, bool) {
	s, ok := r.Columns[name]
	return s, ok
}

// NumericColumns returns names of numeric columns in table order
func (r *Report) NumericColumns() []string {
	var names []string
	for _, name := range r.ColumnOrder {
		if r.Columns[name].Type == TypeNumeric {
			names = append(names, name)
		}
	}
	return names
}

// Float is a convenience for building nullable statistics. NaN and ±Inf,
// which arise when a computation overflows, are reported as null.
func Float(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

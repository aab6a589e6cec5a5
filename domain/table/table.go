package table

import (
	"fmt"
	"strings"

	"tabscope/domain/core"
)

// Column is a named, ordered sequence of cells
type Column struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// NewColumn creates a column from values
func NewColumn(name string, values ...Value) Column {
	return Column{Name: name, Values: values}
}

// Len returns the number of cells
func (c Column) Len() int {
	return len(c.Values)
}

// MissingCount returns the number of absent cells
func (c Column) MissingCount() int {
	missing := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			missing++
		}
	}
	return missing
}

// Table is an ordered set of equal-length, uniquely named columns.
// A Table is never modified after New returns; derived tables are copies.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New validates and builds a table
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if strings.TrimSpace(col.Name) == "" {
			return nil, fmt.Errorf("column %d: %w", i, core.ErrEmptyColumnName)
		}
		if _, exists := t.index[col.Name]; exists {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateColumn, col.Name)
		}
		if i > 0 && col.Len() != t.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, expected %d", core.ErrRaggedTable, col.Name, col.Len(), t.rows)
		}
		if i == 0 {
			t.rows = col.Len()
		}

		values := make([]Value, len(col.Values))
		copy(values, col.Values)
		t.columns[i] = Column{Name: col.Name, Values: values}
		t.index[col.Name] = i
	}

	return t, nil
}

// FromRecords builds a table from a header row and string records. Short
// records are padded with absent cells and extra fields are dropped.
func FromRecords(headers []string, records [][]string, na NASet) (*Table, error) {
	if na == nil {
		na = DefaultNASet()
	}

	columns := make([]Column, len(headers))
	for j, h := range headers {
		columns[j] = Column{Name: h, Values: make([]Value, len(records))}
	}

	for i, record := range records {
		for j := range headers {
			if j < len(record) {
				columns[j].Values[i] = na.Cell(record[j])
			} else {
				columns[j].Values[i] = NewMissingValue()
			}
		}
	}

	return New(columns...)
}

// NumRows returns the row count
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the column count
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the columns in order. Callers must not modify the values.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks up a column by name
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, core.NewColumnNotFoundError(name)
	}
	return t.columns[i], nil
}

// Row returns the cells of row i in column order
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, col := range t.columns {
		row[j] = col.Values[i]
	}
	return row
}

// Select returns a new table with only the named columns, in the given order
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// Head returns a new table with the first n rows
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > t.rows {
		n = t.rows
	}

	head := &Table{
		columns: make([]Column, len(t.columns)),
		index:   make(map[string]int, len(t.columns)),
		rows:    n,
	}
	for i, col := range t.columns {
		values := make([]Value, n)
		copy(values, col.Values[:n])
		head.columns[i] = Column{Name: col.Name, Values: values}
		head.index[col.Name] = i
	}
	return head
}

// Records returns the table as rows of raw cells keyed by column name
func (t *Table) Records() []map[string]interface{} {
	records := make([]map[string]interface{}, t.rows)
	for i := 0; i < t.rows; i++ {
		rec := make(map[string]interface{}, len(t.columns))
		for _, col := range t.columns {
			rec[col.Name] = col.Values[i].Raw()
		}
		records[i] = rec
	}
	return records
}

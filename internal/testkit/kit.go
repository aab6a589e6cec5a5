package testkit

import (
	"testing"

	"tabscope/domain/table"
)

// SalesHeaders and SalesRecords describe a small fixture with two absent
// cells (price row 3, region row 6) and one duplicate row (row 5 repeats row 2).
var (
	SalesHeaders = []string{"region", "units", "price", "active"}
	SalesRecords = [][]string{
		{"North", "10", "2.5", "true"},
		{"South", "4", "3.0", "false"},
		{"North", "7", "", "true"},
		{"East", "12", "1.25", "false"},
		{"South", "4", "3.0", "false"},
		{"", "3", "4.0", "true"},
		{"West", "9", "2.0", "true"},
	}
)

// SalesTable builds the sales fixture
func SalesTable(tb testing.TB) *table.Table {
	tb.Helper()
	tbl, err := table.FromRecords(SalesHeaders, SalesRecords, nil)
	if err != nil {
		tb.Fatalf("failed to build sales fixture: %v", err)
	}
	return tbl
}

// NumericTable builds a table of numeric columns from name/value pairs in order
func NumericTable(tb testing.TB, names []string, columns ...[]float64) *table.Table {
	tb.Helper()
	if len(names) != len(columns) {
		tb.Fatalf("got %d names for %d columns", len(names), len(columns))
	}

	cols := make([]table.Column, len(names))
	for i, name := range names {
		values := make([]table.Value, len(columns[i]))
		for j, f := range columns[i] {
			values[j] = table.NewNumericValue(f)
		}
		cols[i] = table.NewColumn(name, values...)
	}

	tbl, err := table.New(cols...)
	if err != nil {
		tb.Fatalf("failed to build numeric table: %v", err)
	}
	return tbl
}

// StringTable builds a table from string columns; "" becomes an absent cell
func StringTable(tb testing.TB, names []string, columns ...[]string) *table.Table {
	tb.Helper()
	if len(names) != len(columns) {
		tb.Fatalf("got %d names for %d columns", len(names), len(columns))
	}

	cols := make([]table.Column, len(names))
	for i, name := range names {
		values := make([]table.Value, len(columns[i]))
		for j, s := range columns[i] {
			values[j] = table.NewStringValue(s)
		}
		cols[i] = table.NewColumn(name, values...)
	}

	tbl, err := table.New(cols...)
	if err != nil {
		tb.Fatalf("failed to build string table: %v", err)
	}
	return tbl
}

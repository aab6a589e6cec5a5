package ports

import (
	"tabscope/domain/profile"
	"tabscope/domain/table"
)

// ProfilerPort computes the descriptive profile of a table
type ProfilerPort interface {
	Profile(t *table.Table) profile.Report
}

// ClassifierPort infers the semantic type of columns
type ClassifierPort interface {
	Classify(col table.Column) profile.ColumnType
	ClassifyTable(t *table.Table) []profile.ColumnType
	NumericColumns(t *table.Table) []string
}

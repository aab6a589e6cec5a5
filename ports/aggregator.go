package ports

import (
	"tabscope/domain/chart"
	"tabscope/domain/table"
)

// AggregatorPort derives chart-ready datasets from a table
type AggregatorPort interface {
	Aggregate(t *table.Table, req chart.Request) (*chart.Result, error)
}

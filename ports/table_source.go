package ports

import (
	"context"

	"tabscope/domain/table"
)

// TableSourcePort loads a table from an external source. Parse failures are
// reported here and never reach the profiling core.
type TableSourcePort interface {
	Load(ctx context.Context) (*table.Table, error)
	// Name identifies the source in reports and logs
	Name() string
}

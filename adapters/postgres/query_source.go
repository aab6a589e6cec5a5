package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tabscope/domain/table"
	"tabscope/internal"
	"tabscope/internal/errors"
)

// QuerySource loads the result of a SQL query as a table. SQL NULL becomes
// an absent cell; column order follows the result set.
type QuerySource struct {
	db     *sqlx.DB
	query  string
	args   []interface{}
	logger *internal.Logger
}

// Connect opens a PostgreSQL connection pool
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.ConfigInvalid("database URL is required")
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}

// NewQuerySource creates a source that runs query with args
func NewQuerySource(db *sqlx.DB, query string, args ...interface{}) *QuerySource {
	return &QuerySource{
		db:     db,
		query:  query,
		args:   args,
		logger: internal.DefaultLogger.With("QuerySource"),
	}
}

// NewTableSource reads up to limit rows of a whole table; limit <= 0 reads all.
func NewTableSource(db *sqlx.DB, tableName string, limit int) *QuerySource {
	query := "SELECT * FROM " + quoteQualified(tableName)
	if limit > 0 {
		return NewQuerySource(db, query+" LIMIT $1", limit)
	}
	return NewQuerySource(db, query)
}

func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// Name returns the first line of the query
func (s *QuerySource) Name() string {
	name := strings.TrimSpace(s.query)
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = name[:i]
	}
	return name
}

// Load implements ports.TableSourcePort
func (s *QuerySource) Load(ctx context.Context) (*table.Table, error) {
	start := time.Now()

	rows, err := s.db.QueryxContext(ctx, s.query, s.args...)
	if err != nil {
		return nil, errors.DatabaseError("query failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.DatabaseError("failed to read result columns", err)
	}

	var records [][]interface{}
	for rows.Next() {
		rec, err := rows.SliceScan()
		if err != nil {
			return nil, errors.DatabaseError("failed to scan row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate rows", err)
	}

	t, err := buildTable(columns, records)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("query returned %d rows x %d columns in %s", t.NumRows(), t.NumColumns(), time.Since(start))
	return t, nil
}

// buildTable converts scanned rows into columns. Repeated column names, as
// produced by joins, are suffixed ".1", ".2", ...
func buildTable(columns []string, records [][]interface{}) (*table.Table, error) {
	names := make([]string, len(columns))
	seen := make(map[string]int, len(columns))
	for j, c := range columns {
		name := c
		if name == "" {
			name = fmt.Sprintf("column%d", j+1)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		names[j] = name
	}

	cols := make([]table.Column, len(names))
	for j, name := range names {
		values := make([]table.Value, len(records))
		for i, rec := range records {
			if j < len(rec) {
				values[i] = sqlCell(rec[j])
			}
		}
		cols[j] = table.NewColumn(name, values...)
	}

	t, err := table.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("invalid query result: %w", err)
	}
	return t, nil
}

// sqlCell converts a driver value. Timestamps are rendered RFC 3339 so they
// classify as categorical rather than as their Go String form.
func sqlCell(raw interface{}) table.Value {
	switch x := raw.(type) {
	case time.Time:
		return table.NewStringValue(x.UTC().Format(time.RFC3339))
	case []byte:
		return table.NewStringValue(string(x))
	default:
		return table.FromInterface(x)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tabscope/adapters/api"
	"tabscope/adapters/excel"
	"tabscope/adapters/postgres"
	"tabscope/domain/chart"
	"tabscope/domain/table"
	"tabscope/internal/config"
	"tabscope/internal/container"
	"tabscope/internal/report"
)

func newContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func newProfileCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "profile FILE",
		Short: "Profile a CSV or XLSX file",
		Long: `Classify every column and compute dataset and column statistics.

Example: tabscope-cli profile orders.csv --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			t, name, err := readFile(cmd, c, args[0])
			if err != nil {
				return err
			}
			return profileAndWrite(cmd, c, name, t, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown or html")
	return cmd
}

func newAggregateCmd() *cobra.Command {
	var req chart.Request
	var kind string

	cmd := &cobra.Command{
		Use:   "aggregate FILE",
		Short: "Compute the dataset behind a chart",
		Long: `Compute a chart aggregation and print it as JSON.

Kinds: bar (--x group, --y value), histogram (--y, --bins), pie (--x, --top),
heatmap (--columns), line and scatter (--x, --y), dashboard (--columns).

Example: tabscope-cli aggregate orders.csv --kind bar --x country --y order_value`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := chart.ParseKind(kind)
			if err != nil {
				return err
			}
			req.Kind = k

			c, err := newContainer()
			if err != nil {
				return err
			}
			t, _, err := readFile(cmd, c, args[0])
			if err != nil {
				return err
			}

			result, err := c.ProfileService.Aggregate(t, req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Chart kind")
	cmd.Flags().StringVar(&req.X, "x", "", "X column (group or category)")
	cmd.Flags().StringVar(&req.Y, "y", "", "Y column (numeric value)")
	cmd.Flags().StringSliceVar(&req.Columns, "columns", nil, "Numeric columns for heatmap or dashboard")
	cmd.Flags().IntVar(&req.Bins, "bins", 0, "Histogram bin count (0 uses HISTOGRAM_BINS)")
	cmd.Flags().IntVar(&req.TopN, "top", 0, "Pie chart category count (0 uses TOP_N)")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns FILE",
		Short: "List columns with their inferred types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			t, _, err := readFile(cmd, c, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, col := range c.ProfileService.Columns(t) {
				fmt.Fprintf(out, "%-24s %-12s non-null=%d missing=%d\n", col.Name, col.Type, col.NonNullCount, col.MissingCount)
			}
			return nil
		},
	}
}

func newQueryCmd() *cobra.Command {
	var dsn, query, tableName, format string
	var limit int

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Profile the result of a SQL query",
		Long: `Run a query against PostgreSQL and profile the result set. SQL NULL is
read as a missing cell. --dsn defaults to DATABASE_URL.

Example: tabscope-cli query --sql "SELECT * FROM orders WHERE country = 'US'"
         tabscope-cli query --table public.orders --limit 5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (query == "") == (tableName == "") {
				return fmt.Errorf("exactly one of --sql or --table is required")
			}

			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			db, err := c.OpenDatabase(cmd.Context(), dsn)
			if err != nil {
				return err
			}

			var src *postgres.QuerySource
			if query != "" {
				src = postgres.NewQuerySource(db, query)
			} else {
				src = postgres.NewTableSource(db, tableName, limit)
			}

			t, err := c.ProfileService.Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			return profileAndWrite(cmd, c, src.Name(), t, format)
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string (default DATABASE_URL)")
	cmd.Flags().StringVar(&query, "sql", "", "Query to run")
	cmd.Flags().StringVar(&tableName, "table", "", "Table to read instead of a query")
	cmd.Flags().IntVar(&limit, "limit", 0, "Row limit for --table (0 reads all)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown or html")
	return cmd
}

func newFetchCmd() *cobra.Command {
	var dataPath, token, authMethod, format string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "fetch URL",
		Short: "Profile a JSON array of records served over HTTP",
		Long: `Fetch a JSON document, read the array of objects at --path and profile it.
Columns appear in the order keys are first seen.

Example: tabscope-cli fetch https://example.com/api/orders --path data.items`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}

			srcCfg := api.DefaultSourceConfig(args[0])
			srcCfg.DataPath = dataPath
			srcCfg.AuthMethod = authMethod
			srcCfg.AuthToken = token
			if timeout > 0 {
				srcCfg.Timeout = timeout
			}

			src := api.NewRecordsReader(srcCfg, c.Config.Ingestion.NASet())
			t, err := c.ProfileService.Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			return profileAndWrite(cmd, c, src.Name(), t, format)
		},
	}

	cmd.Flags().StringVar(&dataPath, "path", "", "gjson path to the record array (default: document root)")
	cmd.Flags().StringVar(&authMethod, "auth", "", "Auth method: bearer or api_key")
	cmd.Flags().StringVar(&token, "token", "", "Auth token")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (default 30s)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown or html")
	return cmd
}

func readFile(cmd *cobra.Command, c *container.Container, path string) (*table.Table, string, error) {
	r, err := excel.NewDataReader(path, c.ReaderConfig())
	if err != nil {
		return nil, "", err
	}
	t, err := c.ProfileService.Load(cmd.Context(), r)
	return t, r.Name(), err
}

func profileAndWrite(cmd *cobra.Command, c *container.Container, source string, t *table.Table, format string) error {
	run, err := c.ProfileService.ProfileRun(cmd.Context(), source, t)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		return writeJSON(out, run)
	case "markdown", "md":
		_, err = io.WriteString(out, report.Markdown(run))
	case "html":
		_, err = out.Write(report.HTML(run))
	default:
		return fmt.Errorf("unknown format %q (use json, markdown or html)", format)
	}
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

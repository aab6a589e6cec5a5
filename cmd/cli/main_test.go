package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabscope/adapters/excel"
	"tabscope/internal/testkit"
)

func writeSales(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, excel.WriteCSV(f, testkit.SalesHeaders, testkit.SalesRecords))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("NA_VALUES", "")
	t.Setenv("PROFILE_WORKERS", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProfileCommand(t *testing.T) {
	path := writeSales(t)

	out, err := run(t, "profile", path)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "sales.csv", body["source"])

	md, err := run(t, "profile", path, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, md, "# Profile: sales.csv")

	_, err = run(t, "profile", path, "--format", "yaml")
	assert.Error(t, err)
}

func TestAggregateCommand(t *testing.T) {
	path := writeSales(t)

	out, err := run(t, "aggregate", path, "--kind", "pie", "--x", "region", "--top", "2")
	require.NoError(t, err)

	var body struct {
		Kind string `json:"kind"`
		TopN struct {
			Labels []string `json:"labels"`
			Counts []int    `json:"counts"`
		} `json:"top_n"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "pie", body.Kind)
	assert.Equal(t, []string{"North", "South"}, body.TopN.Labels)

	_, err = run(t, "aggregate", path, "--kind", "heatmap", "--columns", "units")
	assert.Error(t, err)

	_, err = run(t, "aggregate", path, "--kind", "radar")
	assert.Error(t, err)
}

func TestColumnsCommand(t *testing.T) {
	out, err := run(t, "columns", writeSales(t))
	require.NoError(t, err)
	assert.Contains(t, out, "region")
	assert.Contains(t, out, "categorical")
	assert.Contains(t, out, "missing=1")
}

func TestQueryCommandValidatesFlags(t *testing.T) {
	_, err := run(t, "query")
	assert.ErrorContains(t, err, "exactly one of --sql or --table")

	t.Setenv("DATABASE_URL", "")
	_, err = run(t, "query", "--sql", "SELECT 1")
	assert.ErrorContains(t, err, "database URL is required")
}

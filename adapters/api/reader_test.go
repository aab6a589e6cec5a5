package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabscope/domain/table"
	apperrors "tabscope/internal/errors"
)

const ordersJSON = `{
  "meta": {"count": 3},
  "data": [
    {"region": "North", "units": 10, "active": true},
    {"units": 4, "region": "South", "note": "late", "tags": ["a", "b"]},
    {"region": null, "units": "NA", "active": false}
  ]
}`

func TestParseRecordsKeepsFirstSeenKeyOrder(t *testing.T) {
	tbl, err := ParseRecords([]byte(ordersJSON), "data", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "units", "active", "note", "tags"}, tbl.ColumnNames())
	assert.Equal(t, 3, tbl.NumRows())

	region, _ := tbl.Column("region")
	assert.Equal(t, "South", region.Values[1].String())
	assert.True(t, region.Values[2].IsMissing(), "null is absent")

	units, _ := tbl.Column("units")
	assert.Equal(t, table.ValueTypeNumeric, units.Values[0].Type)
	assert.True(t, units.Values[2].IsMissing(), "NA string is absent")

	active, _ := tbl.Column("active")
	assert.True(t, active.Values[1].IsMissing(), "missing key is absent")
	assert.Equal(t, "false", active.Values[2].String())

	tags, _ := tbl.Column("tags")
	assert.Equal(t, `["a", "b"]`, tags.Values[1].String())
}

func TestParseRecordsShapes(t *testing.T) {
	single, err := ParseRecords([]byte(`{"a": 1, "b": "x"}`), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, single.NumRows())

	root, err := ParseRecords([]byte(`[{"a": 1}, {"a": 2}]`), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, root.NumRows())

	empty, err := ParseRecords([]byte(`[]`), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumColumns())

	_, err = ParseRecords([]byte(`{"data": 5}`), "data", nil)
	assert.Error(t, err)

	_, err = ParseRecords([]byte(`{"data": []}`), "rows", nil)
	assert.ErrorContains(t, err, "not found")

	_, err = ParseRecords([]byte(`[1, 2]`), "", nil)
	assert.ErrorContains(t, err, "not an object")

	_, err = ParseRecords([]byte(`{oops`), "", nil)
	assert.Error(t, err)
}

func TestRecordsReaderLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ordersJSON))
	}))
	defer srv.Close()

	cfg := DefaultSourceConfig(srv.URL)
	cfg.DataPath = "data"
	cfg.AuthMethod = "bearer"
	cfg.AuthToken = "secret"

	reader := NewRecordsReader(cfg, nil)
	assert.Equal(t, srv.URL, reader.Name())

	tbl, err := reader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.NumRows())

	cfg.AuthToken = "wrong"
	_, err = NewRecordsReader(cfg, nil).Load(context.Background())
	assert.ErrorContains(t, err, "status 401")
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))

	_, err = NewRecordsReader(DefaultSourceConfig(""), nil).Load(context.Background())
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
}

func TestRecordsReaderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRecordsReader(DefaultSourceConfig(url), nil).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
}

func TestSourceConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultSourceConfig("http://example.test").Validate())
	assert.Error(t, SourceConfig{Timeout: 1}.Validate())

	cfg := DefaultSourceConfig("http://example.test")
	cfg.AuthMethod = "oauth"
	assert.Error(t, cfg.Validate())
}

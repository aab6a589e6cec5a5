package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabscope/adapters/excel"
	"tabscope/app"
	"tabscope/internal"
	"tabscope/internal/testkit"
)

func newTestServer(t *testing.T, maxUploadMB int) http.Handler {
	t.Helper()
	logger := internal.NewLoggerTo(internal.LogLevelError, io.Discard)
	svc := app.NewProfileService(app.WithWorkers(2), app.WithLogger(logger))
	s := NewServer(ServerConfig{
		GinMode:      gin.TestMode,
		MaxUploadMB:  maxUploadMB,
		ReaderConfig: excel.DefaultReaderConfig(),
	}, svc, logger)
	return s.Handler()
}

func salesCSV() []byte {
	var b strings.Builder
	b.WriteString(strings.Join(testkit.SalesHeaders, ",") + "\n")
	for _, rec := range testkit.SalesRecords {
		b.WriteString(strings.Join(rec, ",") + "\n")
	}
	return []byte(b.String())
}

func uploadRequest(t *testing.T, target, filename string, content []byte, fields map[string][]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, 1)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestProfileEndpoint(t *testing.T) {
	h := newTestServer(t, 1)

	rec := serve(h, uploadRequest(t, "/api/profile", "sales.csv", salesCSV(), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "sales.csv", body["source"])
	assert.NotEmpty(t, body["run_id"])

	dataset := body["report"].(map[string]interface{})["dataset"].(map[string]interface{})
	assert.Equal(t, 7.0, dataset["row_count"])
	assert.Equal(t, 2.0, dataset["missing_cell_count"])
	assert.Equal(t, 1.0, dataset["duplicate_row_count"])
}

func TestProfileEndpointFormats(t *testing.T) {
	h := newTestServer(t, 1)

	md := serve(h, uploadRequest(t, "/api/profile?format=markdown", "sales.csv", salesCSV(), nil))
	require.Equal(t, http.StatusOK, md.Code)
	assert.Contains(t, md.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, md.Body.String(), "## Numeric summary")

	page := serve(h, uploadRequest(t, "/api/profile?format=html", "sales.csv", salesCSV(), nil))
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, page.Body.String(), "<table>")

	bad := serve(h, uploadRequest(t, "/api/profile?format=pdf", "sales.csv", salesCSV(), nil))
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestUploadErrors(t *testing.T) {
	h := newTestServer(t, 1)

	missing := serve(h, uploadRequest(t, "/api/profile", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, missing)["code"])

	unsupported := serve(h, uploadRequest(t, "/api/profile", "notes.txt", []byte("hello"), nil))
	assert.Equal(t, http.StatusBadRequest, unsupported.Code)

	broken := serve(h, uploadRequest(t, "/api/columns", "book.xlsx", []byte("not a zip"), nil))
	assert.Equal(t, http.StatusBadRequest, broken.Code)

	big := bytes.Repeat([]byte("a,b\n1,2\n"), (1<<20)/8+1)
	tooLarge := serve(h, uploadRequest(t, "/api/profile", "big.csv", big, nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, tooLarge.Code)
}

func TestColumnsEndpoint(t *testing.T) {
	h := newTestServer(t, 1)

	rec := serve(h, uploadRequest(t, "/api/columns", "sales.csv", salesCSV(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, []interface{}{"units", "price"}, body["numeric_columns"])
	cols := body["columns"].([]interface{})
	require.Len(t, cols, 4)
	assert.Equal(t, "boolean", cols[3].(map[string]interface{})["type"])
}

func TestAggregateEndpoint(t *testing.T) {
	h := newTestServer(t, 1)

	t.Run("bar", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, "/api/aggregate", "sales.csv", salesCSV(), map[string][]string{
			"kind": {"bar"}, "x": {"region"}, "y": {"units"},
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		gm := decode(t, rec)["group_means"].(map[string]interface{})
		assert.Equal(t, []interface{}{"North", "South", "East", "West"}, gm["labels"])
	})

	t.Run("heatmap with comma list", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, "/api/aggregate", "sales.csv", salesCSV(), map[string][]string{
			"kind": {"heatmap"}, "columns": {"units, price"},
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		corr := decode(t, rec)["correlation"].(map[string]interface{})
		assert.Equal(t, []interface{}{"units", "price"}, corr["column_names"])
	})

	t.Run("unknown column is 404", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, "/api/aggregate", "sales.csv", salesCSV(), map[string][]string{
			"kind": {"histogram"}, "y": {"weight"},
		}))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("single numeric column heatmap is 422", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, "/api/aggregate", "sales.csv", salesCSV(), map[string][]string{
			"kind": {"heatmap"}, "columns": {"units"},
		}))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, true, decode(t, rec)["warning"])
	})

	t.Run("missing kind", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, "/api/aggregate", "sales.csv", salesCSV(), nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "Kind")
	})

	t.Run("malformed bins reports the bind error", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, "/api/aggregate", "sales.csv", salesCSV(), map[string][]string{
			"kind": {"histogram"}, "y": {"units"}, "bins": {"abc"},
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], `"abc"`)
	})

	t.Run("oversized body without content length is 413", func(t *testing.T) {
		big := bytes.Repeat([]byte("a,b\n1,2\n"), (1<<20)/8+1)
		req := uploadRequest(t, "/api/aggregate", "big.csv", big, map[string][]string{"kind": {"bar"}})
		req.ContentLength = -1
		rec := serve(h, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", decode(t, rec)["code"])
	})

	t.Run("unknown kind", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, "/api/aggregate", "sales.csv", salesCSV(), map[string][]string{
			"kind": {"radar"},
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPreviewEndpoint(t *testing.T) {
	h := newTestServer(t, 1)

	rec := serve(h, uploadRequest(t, "/api/preview?rows=2", "sales.csv", salesCSV(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, 7.0, body["total_rows"])
	rows := body["rows"].([]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, "North", rows[0].(map[string]interface{})["region"])

	bad := serve(h, uploadRequest(t, "/api/preview?rows=x", "sales.csv", salesCSV(), nil))
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

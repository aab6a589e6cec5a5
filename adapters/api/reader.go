package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"tabscope/domain/table"
	"tabscope/internal"
	apperrors "tabscope/internal/errors"
)

// RecordsReader turns a JSON array of objects into a table. Column order is
// the order in which keys are first seen across the records.
type RecordsReader struct {
	config     SourceConfig
	na         table.NASet
	httpClient *http.Client
	logger     *internal.Logger
}

// NewRecordsReader creates a reader for an HTTP JSON source
func NewRecordsReader(config SourceConfig, na table.NASet) *RecordsReader {
	return &RecordsReader{
		config:     config,
		na:         na,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     internal.DefaultLogger.With("RecordsReader"),
	}
}

// Name returns the source URL
func (r *RecordsReader) Name() string {
	return r.config.URL
}

// Load fetches the endpoint and parses its records
func (r *RecordsReader) Load(ctx context.Context) (*table.Table, error) {
	if err := r.config.Validate(); err != nil {
		return nil, apperrors.WithCode(apperrors.CodeValidationError, fmt.Errorf("invalid source config: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range r.config.Headers {
		req.Header.Set(k, v)
	}
	switch r.config.AuthMethod {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+r.config.AuthToken)
	case "api_key":
		req.Header.Set("X-API-Key", r.config.AuthToken)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ExternalServiceError(r.config.URL, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ExternalServiceError(r.config.URL, fmt.Errorf("failed to read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ExternalServiceError(r.config.URL,
			fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	t, err := ParseRecords(body, r.config.DataPath, r.na)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("fetched %s: %d rows x %d columns", r.config.URL, t.NumRows(), t.NumColumns())
	return t, nil
}

// ParseRecords reads the array at dataPath (the whole document when empty).
// A single object is read as one record. JSON null and missing keys become
// absent cells; nested objects and arrays are kept as their raw JSON text.
func ParseRecords(body []byte, dataPath string, na table.NASet) (*table.Table, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	if na == nil {
		na = table.DefaultNASet()
	}

	data := gjson.ParseBytes(body)
	if dataPath != "" {
		data = data.Get(dataPath)
		if !data.Exists() {
			return nil, fmt.Errorf("data path '%s' not found in response", dataPath)
		}
	}

	var records []gjson.Result
	switch {
	case data.IsArray():
		records = data.Array()
	case data.IsObject():
		records = []gjson.Result{data}
	default:
		return nil, fmt.Errorf("data path '%s' is not an array or object", dataPath)
	}

	index := make(map[string]int)
	var names []string
	var columns [][]table.Value

	for i, rec := range records {
		if !rec.IsObject() {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		rec.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			j, ok := index[name]
			if !ok {
				j = len(names)
				index[name] = j
				names = append(names, name)
				columns = append(columns, make([]table.Value, len(records)))
			}
			columns[j][i] = cell(value, na)
			return true
		})
	}

	cols := make([]table.Column, len(names))
	for j, name := range names {
		cols[j] = table.NewColumn(name, columns[j]...)
	}
	return table.New(cols...)
}

func cell(v gjson.Result, na table.NASet) table.Value {
	switch v.Type {
	case gjson.Null:
		return table.NewMissingValue()
	case gjson.True:
		return table.NewBooleanValue(true)
	case gjson.False:
		return table.NewBooleanValue(false)
	case gjson.Number:
		return table.NewNumericValue(v.Num)
	case gjson.String:
		return na.Cell(v.Str)
	default:
		return table.NewStringValue(v.Raw)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

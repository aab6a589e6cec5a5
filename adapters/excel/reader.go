package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tabscope/domain/table"
	"tabscope/internal"
)

// DataReader reads CSV and Excel files into tables
type DataReader struct {
	filePath string
	fileType FileType
	config   ReaderConfig
	logger   *internal.Logger
}

// NewDataReader creates a reader for filePath, choosing CSV or XLSX by extension
func NewDataReader(filePath string, config ReaderConfig) (*DataReader, error) {
	fileType, err := DetectFileType(filePath)
	if err != nil {
		return nil, err
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		logger:   internal.DefaultLogger.With("DataReader"),
	}, nil
}

// Name returns the base name of the file
func (r *DataReader) Name() string {
	return filepath.Base(r.filePath)
}

// Load implements ports.TableSourcePort
func (r *DataReader) Load(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.ReadTable()
}

// ReadTable reads the file into a table
func (r *DataReader) ReadTable() (*table.Table, error) {
	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(string(r.fileType)), r.filePath)
		}
		return nil, fmt.Errorf("failed to open %s: %w", r.filePath, err)
	}
	defer file.Close()

	return read(file, r.fileType, r.config, r.logger)
}

// ReadBytes parses an uploaded file held in memory. name only selects the format.
func ReadBytes(name string, data []byte, config ReaderConfig) (*table.Table, error) {
	fileType, err := DetectFileType(name)
	if err != nil {
		return nil, err
	}
	return read(bytes.NewReader(data), fileType, config, internal.DefaultLogger.With("DataReader"))
}

func read(src io.Reader, fileType FileType, config ReaderConfig, logger *internal.Logger) (*table.Table, error) {
	start := time.Now()

	var rows [][]string
	var err error
	switch fileType {
	case FileTypeCSV:
		rows, err = readCSVRows(src)
	case FileTypeXLSX:
		rows, err = readExcelRows(src, config.Sheet)
	}
	if err != nil {
		return nil, err
	}

	t, err := processRows(rows, config.naSet())
	if err != nil {
		return nil, err
	}

	logger.Debug("%s parsed in %.2fms (%d columns, %d rows)",
		strings.ToUpper(string(fileType)), float64(time.Since(start).Nanoseconds())/1e6,
		t.NumColumns(), t.NumRows())
	return t, nil
}

func readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readExcelRows(src io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (have %s)", sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// processRows turns raw string rows into a table. The first row is the header.
func processRows(rows [][]string, na table.NASet) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file must have a header row")
	}

	headers := normalizeHeaders(rows[0])
	records := rows[1:]
	for _, rec := range records {
		for j := range rec {
			rec[j] = strings.TrimSpace(rec[j])
		}
	}

	return table.FromRecords(headers, records, na)
}

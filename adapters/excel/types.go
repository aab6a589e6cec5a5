package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"tabscope/domain/core"
)

// FileType is a supported spreadsheet format
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// DetectFileType picks the format from a file name's extension
func DetectFileType(name string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FileTypeCSV, nil
	case ".xlsx", ".xlsm":
		return FileTypeXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .csv or .xlsx)", core.ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// normalizeHeaders trims header cells, names blank ones "Unnamed: i" and
// suffixes repeats ".1", ".2", ... so every column name is unique.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		headers[i] = h
	}

	taken := make(map[string]bool, len(headers))
	for _, h := range headers {
		taken[h] = true
	}
	for i, h := range headers {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			continue
		}
		name := fmt.Sprintf("%s.%d", h, n)
		for taken[name] {
			n++
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = true
		headers[i] = name
	}
	return headers
}

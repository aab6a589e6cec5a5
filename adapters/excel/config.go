package excel

import "tabscope/domain/table"

// ReaderConfig controls how spreadsheet files become tables
type ReaderConfig struct {
	// Sheet names the worksheet to read; empty selects the first sheet.
	Sheet string `json:"sheet"`
	// NA lists the tokens read as absent cells; nil selects the defaults.
	NA table.NASet `json:"-"`
}

// DefaultReaderConfig reads the first sheet with the default NA tokens
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{NA: table.DefaultNASet()}
}

func (c ReaderConfig) naSet() table.NASet {
	if c.NA == nil {
		return table.DefaultNASet()
	}
	return c.NA
}

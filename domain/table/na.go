package table

import "strings"

// NASet holds the string tokens that ingestion treats as absent cells.
type NASet map[string]struct{}

// DefaultNATokens mirrors the tokens pandas treats as missing when reading CSV.
var DefaultNATokens = []string{
	"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan",
	"null", "NULL", "None", "#N/A", "#NA", "<NA>", "#N/A N/A",
	"1.#IND", "1.#QNAN", "-1.#IND", "-1.#QNAN",
}

// NewNASet builds an NA set from tokens
func NewNASet(tokens []string) NASet {
	set := make(NASet, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// DefaultNASet returns the default NA set
func DefaultNASet() NASet {
	return NewNASet(DefaultNATokens)
}

// Contains reports whether s (after trimming) is an NA token
func (s NASet) Contains(v string) bool {
	_, ok := s[strings.TrimSpace(v)]
	return ok
}

// Cell converts a raw string cell into a Value, honoring the NA set.
func (s NASet) Cell(raw string) Value {
	if s.Contains(raw) {
		return NewMissingValue()
	}
	return NewStringValue(raw)
}

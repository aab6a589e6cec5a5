package classifier

import (
	"math"
	"strconv"
	"strings"

	"tabscope/domain/profile"
	"tabscope/domain/table"
)

// TypeClassifier infers column types and coerces cells to their column's type.
// It holds no state; the zero value is ready to use.
type TypeClassifier struct{}

// NewTypeClassifier creates a classifier
func NewTypeClassifier() *TypeClassifier {
	return &TypeClassifier{}
}

// Classify infers the type of a column. Rules are checked in order and the
// first match wins: every present cell is a boolean literal → Boolean; every
// present cell is a real number → Numeric; otherwise Categorical. A column
// with no present cells is Categorical.
func (c *TypeClassifier) Classify(col table.Column) profile.ColumnType {
	present := 0
	allBoolean := true
	allNumeric := true

	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		present++
		if allBoolean {
			if _, ok := ParseBoolean(v); !ok {
				allBoolean = false
			}
		}
		if allNumeric {
			if _, ok := ParseNumeric(v); !ok {
				allNumeric = false
			}
		}
		if !allBoolean && !allNumeric {
			return profile.TypeCategorical
		}
	}

	switch {
	case present == 0:
		return profile.TypeCategorical
	case allBoolean:
		return profile.TypeBoolean
	case allNumeric:
		return profile.TypeNumeric
	}
	return profile.TypeCategorical
}

// ClassifyTable classifies every column in table order
func (c *TypeClassifier) ClassifyTable(t *table.Table) []profile.ColumnType {
	cols := t.Columns()
	types := make([]profile.ColumnType, len(cols))
	for i, col := range cols {
		types[i] = c.Classify(col)
	}
	return types
}

// NumericColumns returns the names of Numeric columns in table order
func (c *TypeClassifier) NumericColumns(t *table.Table) []string {
	var names []string
	for _, col := range t.Columns() {
		if c.Classify(col) == profile.TypeNumeric {
			names = append(names, col.Name)
		}
	}
	return names
}

// ParseNumeric reads a present cell as a finite real number
func ParseNumeric(v table.Value) (float64, bool) {
	if v.IsMissing() {
		return 0, false
	}
	switch v.Type {
	case table.ValueTypeNumeric:
		f := *v.NumericVal
		return f, !math.IsInf(f, 0)
	case table.ValueTypeString:
		f, err := strconv.ParseFloat(strings.TrimSpace(*v.StringVal), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// ParseBoolean reads a present cell as a boolean literal (true/false, any case)
func ParseBoolean(v table.Value) (bool, bool) {
	if v.IsMissing() {
		return false, false
	}
	switch v.Type {
	case table.ValueTypeBoolean:
		return *v.BooleanVal, true
	case table.ValueTypeString:
		switch strings.ToLower(strings.TrimSpace(*v.StringVal)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// absentKey is the normalized form of an absent cell.
const absentKey = "\x00"

// Normalize coerces a cell to the string used for equality under the column's
// type: numbers in shortest 'g' form, booleans as true/false, everything else
// as its raw string.
func Normalize(v table.Value, typ profile.ColumnType) string {
	if v.IsMissing() {
		return absentKey
	}
	switch typ {
	case profile.TypeNumeric:
		if f, ok := ParseNumeric(v); ok {
			return table.FormatFloat(f)
		}
	case profile.TypeBoolean:
		if b, ok := ParseBoolean(v); ok {
			return strconv.FormatBool(b)
		}
	}
	if v.Type == table.ValueTypeString {
		return *v.StringVal
	}
	return v.String()
}

// Label is the display form of a normalized cell. A present value that reads
// exactly like the absent marker is shown quoted so the two stay apart.
func Label(v table.Value, typ profile.ColumnType) string {
	if v.IsMissing() {
		return table.MissingLabel
	}
	s := Normalize(v, typ)
	if s == table.MissingLabel {
		return strconv.Quote(s)
	}
	return s
}

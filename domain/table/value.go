package table

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is one cell. The missing variant is the absent marker for every column type.
type Value struct {
	Type       ValueType `json:"type"`
	StringVal  *string   `json:"string_val,omitempty"`
	NumericVal *float64  `json:"numeric_val,omitempty"`
	BooleanVal *bool     `json:"boolean_val,omitempty"`
}

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeMissing ValueType = "missing"
)

// MissingLabel is how an absent cell is displayed and labelled in frequency tables.
const MissingLabel = "<missing>"

// NewStringValue creates a string value. The empty string is absent.
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value. NaN is absent.
func NewNumericValue(n float64) Value {
	if math.IsNaN(n) {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BooleanVal: &b}
}

// NewMissingValue creates the absent marker
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// IsMissing reports whether the cell is absent
func (v Value) IsMissing() bool {
	switch v.Type {
	case ValueTypeString:
		return v.StringVal == nil
	case ValueTypeNumeric:
		return v.NumericVal == nil
	case ValueTypeBoolean:
		return v.BooleanVal == nil
	}
	return true
}

// String returns the display form of the value
func (v Value) String() string {
	if v.IsMissing() {
		return MissingLabel
	}
	switch v.Type {
	case ValueTypeString:
		return *v.StringVal
	case ValueTypeNumeric:
		return FormatFloat(*v.NumericVal)
	case ValueTypeBoolean:
		return strconv.FormatBool(*v.BooleanVal)
	}
	return MissingLabel
}

// Raw returns the cell as a plain Go value: nil, string, float64 or bool.
func (v Value) Raw() interface{} {
	if v.IsMissing() {
		return nil
	}
	switch v.Type {
	case ValueTypeString:
		return *v.StringVal
	case ValueTypeNumeric:
		return *v.NumericVal
	case ValueTypeBoolean:
		return *v.BooleanVal
	}
	return nil
}

// MarshalJSON encodes the raw cell; absent cells become null.
func (v Value) MarshalJSON() ([]byte, error) {
	raw := v.Raw()
	if f, ok := raw.(float64); ok && math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes a raw JSON scalar into a cell
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromInterface(raw)
	return nil
}

// FromInterface converts a decoded scalar into a cell
func FromInterface(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return NewMissingValue()
	case string:
		return NewStringValue(x)
	case bool:
		return NewBooleanValue(x)
	case float64:
		return NewNumericValue(x)
	case float32:
		return NewNumericValue(float64(x))
	case int:
		return NewNumericValue(float64(x))
	case int32:
		return NewNumericValue(float64(x))
	case int64:
		return NewNumericValue(float64(x))
	case uint64:
		return NewNumericValue(float64(x))
	case []byte:
		return NewStringValue(string(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return NewNumericValue(f)
		}
		return NewStringValue(x.String())
	case interface{ String() string }:
		return NewStringValue(x.String())
	}
	return NewMissingValue()
}

// FormatFloat renders a float in its shortest round-trip form
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

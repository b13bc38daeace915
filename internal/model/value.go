package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind discriminates the scalar kinds a parameter value can carry.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a tagged scalar: string, number, bool or null. Action parameters
// arrive from the model as loosely typed JSON; Value pins each one to an
// explicit kind instead of passing interface{} around.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

// String constructs a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number constructs a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Null constructs a null value.
func Null() Value { return Value{Kind: KindNull} }

// AsString renders the value as a string regardless of kind.
func (v Value) AsString() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// IsNull reports whether the value carries nothing.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// MarshalJSON encodes the value as its underlying JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar into a tagged value. Objects and
// arrays are rejected: parameters are scalar by contract.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = String(t)
	case float64:
		*v = Number(t)
	case bool:
		*v = Bool(t)
	default:
		return fmt.Errorf("parameter value must be a scalar, got %T", raw)
	}
	return nil
}

// Params is a string-keyed map of scalar parameter values.
type Params map[string]Value

// GetString returns the named parameter rendered as a string and whether
// the key was present with a non-null value.
func (p Params) GetString(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v.IsNull() {
		return "", false
	}
	return v.AsString(), true
}

// GetInt returns the named parameter as an int.
func (p Params) GetInt(key string) (int, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case KindNumber:
		return int(v.Num), true
	case KindString:
		n, err := strconv.Atoi(v.Str)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Has reports whether the key is present, null or not.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

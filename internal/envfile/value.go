// SPDX-License-Identifier: MPL-2.0

package envfile

import "strconv"

// Value kinds recognized by the loader. Only literal true/false and numeric
// strings are typed; everything else is a string. An empty value is Null.
const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
)

type (
	// Kind classifies a parsed value.
	Kind int

	// Value is a scalar read from an env file. The raw text is always kept so a
	// value written back out is byte-for-byte what was read.
	Value struct {
		raw  string
		kind Kind
	}
)

// NewValue classifies raw and wraps it in a Value.
func NewValue(raw string) Value {
	return Value{raw: raw, kind: classify(raw)}
}

// String returns the raw text of the value ("" for Null).
func (v Value) String() string { return v.raw }

// Kind returns the classification of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value was declared empty (KEY=).
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean value and whether the value is a boolean literal.
func (v Value) Bool() (b, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.raw == "true", true
}

// Number returns the numeric value and whether the value is numeric.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	n, err := strconv.ParseFloat(v.raw, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "string"
	}
}

func classify(raw string) Kind {
	switch raw {
	case "":
		return KindNull
	case "true", "false":
		return KindBool
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil && isNumericLiteral(raw) {
		return KindNumber
	}
	return KindString
}

// isNumericLiteral rejects forms ParseFloat accepts but that are not plain
// decimal numbers in an env file ("Inf", "NaN", "0x1p-2", "1_000").
func isNumericLiteral(raw string) bool {
	digits := 0
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case (r == '-' || r == '+') && i == 0:
		case r == '.':
		default:
			return false
		}
	}
	return digits > 0
}

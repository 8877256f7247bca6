// Package value defines the dynamically-typed value tree the vpack codec
// transports: nil, booleans, integers, doubles, strings, raw byte buffers,
// and tables with an array part and a hash part.
//
// Values are immutable once built except for tables, which grow through
// Append and Set. The codec never retains a value across calls; trees may
// be shared between concurrent Compress calls as long as no goroutine
// mutates them.
package value

import (
	"fmt"
	"math"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the transportable types. The zero Value is
// the nil value.
type Value struct {
	kind Kind

	b   bool
	i   int64
	f   float64
	s   string
	raw []byte
	tbl *Table
}

var nilValue = &Value{kind: KindNil}

// Nil returns the shared nil value. Nil is legal only as a hash-part value;
// it is never a key and never a top-level input.
func Nil() *Value { return nilValue }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Int returns an integer value. Integers and floats are distinct on the
// wire even when numerically equal.
func Int(i int64) *Value { return &Value{kind: KindInt, i: i} }

// Float returns an IEEE-754 binary64 value.
func Float(f float64) *Value { return &Value{kind: KindFloat, f: f} }

// Str returns a string value. The content may be arbitrary 8-bit data.
func Str(s string) *Value { return &Value{kind: KindString, s: s} }

// Bytes returns a raw byte-buffer value. Buffers are semantically distinct
// from strings and stay distinct across a round-trip.
func Bytes(b []byte) *Value { return &Value{kind: KindBytes, raw: b} }

// Tbl wraps a table as a value.
func Tbl(t *Table) *Value { return &Value{kind: KindTable, tbl: t} }

// Kind returns the variant stored in v.
func (v *Value) Kind() Kind { return v.kind }

// IsNil reports whether v is the nil value.
func (v *Value) IsNil() bool { return v.kind == KindNil }

// BoolVal returns the boolean payload. It panics if v is not a bool.
func (v *Value) BoolVal() bool {
	v.mustBe(KindBool)
	return v.b
}

// IntVal returns the integer payload. It panics if v is not an int.
func (v *Value) IntVal() int64 {
	v.mustBe(KindInt)
	return v.i
}

// FloatVal returns the float payload. It panics if v is not a float.
func (v *Value) FloatVal() float64 {
	v.mustBe(KindFloat)
	return v.f
}

// StrVal returns the string payload. It panics if v is not a string.
func (v *Value) StrVal() string {
	v.mustBe(KindString)
	return v.s
}

// BytesVal returns the buffer payload. The returned slice is the value's
// backing store; callers must not modify it. It panics if v is not a buffer.
func (v *Value) BytesVal() []byte {
	v.mustBe(KindBytes)
	return v.raw
}

// TableVal returns the table payload. It panics if v is not a table.
func (v *Value) TableVal() *Table {
	v.mustBe(KindTable)
	return v.tbl
}

func (v *Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("value: %s access on %s value", k, v.kind))
	}
}

// IsScalar reports whether v may be used as a table key. Nil and tables
// are not scalars.
func (v *Value) IsScalar() bool {
	switch v.kind {
	case KindBool, KindInt, KindFloat, KindString, KindBytes:
		return true
	default:
		return false
	}
}

// Equal reports structural equality. Kinds must match exactly: an integer
// never equals a float and a string never equals a buffer, regardless of
// content. Table hash parts are compared order-insensitively.
func (v *Value) Equal(other *Value) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil || v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		// NaN compares equal to itself so round-trip checks hold.
		if math.IsNaN(v.f) && math.IsNaN(other.f) {
			return true
		}
		return math.Float64bits(v.f) == math.Float64bits(other.f)
	case KindString:
		return v.s == other.s
	case KindBytes:
		return string(v.raw) == string(other.raw)
	case KindTable:
		return v.tbl.Equal(other.tbl)
	default:
		return false
	}
}

// String renders a short human-readable form for error messages and tests.
func (v *Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindBytes:
		return fmt.Sprintf("bytes[%d]", len(v.raw))
	case KindTable:
		return fmt.Sprintf("table[%d+%d]", len(v.tbl.Array), len(v.tbl.Hash))
	default:
		return "unknown"
	}
}

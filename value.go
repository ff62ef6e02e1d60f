package sheeter

import (
	"math"
	"strconv"
)

// ValueKind is the type of a cell value.
type ValueKind uint8

const (
	// Blank is a cell written for a null. It is distinct from an empty string.
	Blank ValueKind = iota
	Text
	Integer
	Number
	Boolean
)

// Value is a typed cell value.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
}

func BlankValue() Value           { return Value{} }
func TextValue(s string) Value    { return Value{kind: Text, s: s} }
func IntegerValue(v int64) Value  { return Value{kind: Integer, i: v} }
func NumberValue(v float64) Value { return Value{kind: Number, f: v} }
func BooleanValue(v bool) Value   { return Value{kind: Boolean, b: v} }

func (v Value) Kind() ValueKind { return v.kind }

// IsNumeric reports whether the value is an Integer or a Number.
func (v Value) IsNumeric() bool { return v.kind == Integer || v.kind == Number }

func (v Value) Str() string { return v.s }
func (v Value) Int() int64  { return v.i }
func (v Value) Bool() bool  { return v.b }

// Float returns the value as a float64. Integers are converted.
func (v Value) Float() float64 {
	if v.kind == Integer {
		return float64(v.i)
	}
	return v.f
}

// String renders the value the way text sinks print it. Blank renders empty.
func (v Value) String() string {
	switch v.kind {
	case Text:
		return v.s
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Number:
		return formatFloat(v.f, 64)
	case Boolean:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Any returns the Go value carried by the cell, nil for Blank.
func (v Value) Any() any {
	switch v.kind {
	case Text:
		return v.s
	case Integer:
		return v.i
	case Number:
		return v.f
	case Boolean:
		return v.b
	default:
		return nil
	}
}

// Cell is a value positioned at a column index.
type Cell struct {
	Column int
	Value  Value
}

// formatFloat prints f without an exponent in the range people expect to
// read plainly and falls back to the shortest exponent form elsewhere.
func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

package sheeter

import (
	"math/big"
	"strconv"
)

// EventKind identifies one structured-data write event.
type EventKind uint8

const (
	KindStartObject EventKind = iota + 1
	KindEndObject
	KindStartArray
	KindEndArray
	KindFieldName
	KindString
	KindInt
	KindUint
	KindBigInt
	KindFloat
	KindFloat32
	KindDecimal
	KindBool
	KindBinary
	KindNull
	KindRaw
)

var kindNames = [...]string{
	KindStartObject: "start-object",
	KindEndObject:   "end-object",
	KindStartArray:  "start-array",
	KindEndArray:    "end-array",
	KindFieldName:   "field-name",
	KindString:      "string",
	KindInt:         "int",
	KindUint:        "uint",
	KindBigInt:      "big-int",
	KindFloat:       "float",
	KindFloat32:     "float32",
	KindDecimal:     "decimal",
	KindBool:        "bool",
	KindBinary:      "binary",
	KindNull:        "null",
	KindRaw:         "raw",
}

// String returns the event kind name.
func (k EventKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Event is a single write event. Only the payload field matching Kind is
// meaningful. Use the constructor functions rather than building Events by
// hand.
type Event struct {
	Kind    EventKind
	Text    string // field name, string, raw
	Int     int64
	Uint    uint64
	Float   float64
	Bool    bool
	Bytes   []byte
	Big     *big.Int
	Decimal Decimal
}

// StartObject begins a record, or a nested object under a skipped field.
func StartObject() Event { return Event{Kind: KindStartObject} }

// EndObject ends the innermost object. Ending a record commits its row.
func EndObject() Event { return Event{Kind: KindEndObject} }

// StartArray begins a root-level array of records or a folded cell value.
func StartArray() Event { return Event{Kind: KindStartArray} }

// EndArray ends the innermost array.
func EndArray() Event { return Event{Kind: KindEndArray} }

// FieldName names the column the next value is written to.
func FieldName(name string) Event { return Event{Kind: KindFieldName, Text: name} }

// String writes a text value.
func String(s string) Event { return Event{Kind: KindString, Text: s} }

// Int writes a signed integer.
func Int(v int64) Event { return Event{Kind: KindInt, Int: v} }

// Uint writes an unsigned integer. Values beyond int64 follow BigNumbers.
func Uint(v uint64) Event { return Event{Kind: KindUint, Uint: v} }

// Float writes a float64.
func Float(v float64) Event { return Event{Kind: KindFloat, Float: v} }

// Float32 writes a float32; its text form keeps float32 precision.
func Float32(v float32) Event { return Event{Kind: KindFloat32, Float: float64(v)} }

// Bool writes a boolean.
func Bool(v bool) Event { return Event{Kind: KindBool, Bool: v} }

// Null writes a blank cell, or the null placeholder inside a folded array.
func Null() Event { return Event{Kind: KindNull} }

// DecimalValue writes an exact decimal number.
func DecimalValue(d Decimal) Event { return Event{Kind: KindDecimal, Decimal: d} }

// BigInt writes an arbitrary precision integer. A nil value is a null.
func BigInt(v *big.Int) Event {
	if v == nil {
		return Null()
	}
	return Event{Kind: KindBigInt, Big: v}
}

// Binary writes a payload that is base64 encoded into a text cell. A nil
// slice is a null.
func Binary(b []byte) Event {
	if b == nil {
		return Null()
	}
	return Event{Kind: KindBinary, Bytes: b}
}

// Raw carries pre-encoded text. A Generator rejects it with ErrUnsupported
// since a cell holds a value, not an encoded fragment.
func Raw(s string) Event { return Event{Kind: KindRaw, Text: s} }

func (e Event) isScalar() bool {
	return e.Kind >= KindString && e.Kind <= KindRaw
}

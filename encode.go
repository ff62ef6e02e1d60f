package sheeter

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// maxEncodeDepth bounds the walk over values whose nesting the generator
// skips instead of rejecting, such as self-referencing unknown fields.
const maxEncodeDepth = 32

var (
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	bigIntType        = reflect.TypeFor[big.Int]()
	decimalType       = reflect.TypeFor[Decimal]()
	jsonNumberType    = reflect.TypeFor[json.Number]()
	bytesType         = reflect.TypeFor[[]byte]()
)

// Encode writes v to g as events. Structs and maps with string keys are
// objects, slices and arrays are arrays, []byte is binary, *big.Int and
// Decimal are exact numbers, json.Number keeps its literal and values
// implementing encoding.TextMarshaler are text.
//
// A struct, or a slice of structs, becomes rows; a slice field inside a
// struct folds into one cell.
func Encode(g *Generator, v any) error {
	e := encoder{g: g}
	return e.value(reflect.ValueOf(v), 0)
}

type encoder struct {
	g *Generator
}

func (e *encoder) value(rv reflect.Value, depth int) error {
	if depth > maxEncodeDepth {
		return fmt.Errorf("%w: values nested deeper than %d levels", ErrUnsupported, maxEncodeDepth)
	}
	if !rv.IsValid() {
		return e.g.WriteEvent(Null())
	}
	t := rv.Type()
	switch t {
	case bigIntType:
		return e.g.WriteEvent(BigInt(new(big.Int).Set(addr(rv).Interface().(*big.Int))))
	case decimalType:
		return e.g.WriteEvent(DecimalValue(rv.Interface().(Decimal)))
	case jsonNumberType:
		ev, err := NumberEvent(rv.String())
		if err != nil {
			return err
		}
		return e.g.WriteEvent(ev)
	case bytesType:
		return e.g.WriteEvent(Binary(rv.Bytes()))
	}
	if t.Kind() != reflect.Pointer && t.Implements(textMarshalerType) {
		text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return err
		}
		return e.g.WriteEvent(String(string(text)))
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return e.g.WriteEvent(Null())
		}
		return e.value(rv.Elem(), depth)
	case reflect.Bool:
		return e.g.WriteEvent(Bool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.g.WriteEvent(Int(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return e.g.WriteEvent(Uint(rv.Uint()))
	case reflect.Float32:
		return e.g.WriteEvent(Float32(float32(rv.Float())))
	case reflect.Float64:
		return e.g.WriteEvent(Float(rv.Float()))
	case reflect.String:
		return e.g.WriteEvent(String(rv.String()))
	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && rv.IsNil() {
			return e.g.WriteEvent(Null())
		}
		if err := e.g.WriteEvent(StartArray()); err != nil {
			return err
		}
		for i := range rv.Len() {
			if err := e.value(rv.Index(i), depth+1); err != nil {
				return err
			}
		}
		return e.g.WriteEvent(EndArray())
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s", ErrUnsupported, t.Key())
		}
		if rv.IsNil() {
			return e.g.WriteEvent(Null())
		}
		return e.mapObject(rv, depth)
	case reflect.Struct:
		return e.structObject(rv, depth)
	}
	return fmt.Errorf("%w: cannot encode %s", ErrUnsupported, t)
}

func (e *encoder) mapObject(rv reflect.Value, depth int) error {
	if err := e.g.WriteEvent(StartObject()); err != nil {
		return err
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
	for _, k := range keys {
		if err := e.g.WriteEvent(FieldName(k.String())); err != nil {
			return err
		}
		if err := e.value(rv.MapIndex(k), depth+1); err != nil {
			return err
		}
	}
	return e.g.WriteEvent(EndObject())
}

func (e *encoder) structObject(rv reflect.Value, depth int) error {
	if err := e.g.WriteEvent(StartObject()); err != nil {
		return err
	}
	for _, f := range structFields(rv.Type()) {
		fv, ok := fieldByIndex(rv, f.index)
		if !ok {
			continue
		}
		if err := e.g.WriteEvent(FieldName(f.spec.Name)); err != nil {
			return err
		}
		if err := e.value(fv, depth+1); err != nil {
			return err
		}
	}
	return e.g.WriteEvent(EndObject())
}

// fieldByIndex follows embedded pointers; a nil one hides its fields.
func fieldByIndex(rv reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}, false
			}
			rv = rv.Elem()
		}
		rv = rv.Field(x)
	}
	return rv, true
}

// addr returns a pointer to rv, copying it when it is not addressable.
func addr(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv.Addr()
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p
}

type structField struct {
	index []int
	spec  ColumnSpec
}

var fieldCache sync.Map // map[reflect.Type][]structField

// structFields lists the exported fields of t that map to columns,
// flattening embedded structs, in declaration order.
func structFields(t reflect.Type) []structField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]structField)
	}
	fields := appendStructFields(nil, t, nil)
	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.([]structField)
}

func appendStructFields(out []structField, t reflect.Type, prefix []int) []structField {
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("sheet")
		if tag == "-" {
			continue
		}
		index := append(slices.Clone(prefix), i)
		if sf.Anonymous && tag == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				out = appendStructFields(out, ft, index)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		out = append(out, structField{index: index, spec: parseFieldTag(sf.Name, tag)})
	}
	return out
}

// parseFieldTag reads `sheet:"name,sep=;,null=N/A,type=number,index=3"`.
// Malformed options are ignored.
func parseFieldTag(fieldName, tag string) ColumnSpec {
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = fieldName
	}
	spec := ColumnSpec{Name: name}
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		key, val, _ := strings.Cut(opt, "=")
		switch key {
		case "array":
			spec.Array = true
		case "sep":
			spec.Array = true
			spec.Separator = val
		case "null":
			null := val
			spec.NullValue = &null
		case "type":
			if t, err := ParseColumnType(val); err == nil {
				spec.Type = t
			}
		case "index":
			if n, err := strconv.Atoi(val); err == nil {
				spec.Index = &n
			}
		}
	}
	return spec
}

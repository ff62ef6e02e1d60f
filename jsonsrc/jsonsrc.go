// Package jsonsrc turns JSON documents into sheeter write events.
//
// Objects, arrays, keys and scalars map one to one onto events. Numbers
// keep their literal: integers that fit int64 become Int events, larger
// ones BigInt, and fractions Decimal, so no precision is lost before the
// generator applies its numeric policy.
//
//	g := sheeter.New(sink, schema, sheeter.Options{})
//	if _, err := jsonsrc.Copy(g, os.Stdin); err != nil { ... }
//	err := g.Close()
package jsonsrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/bjaus/sheeter"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// Reader reads events from a stream of JSON values. Concatenated
// top-level values are read one after another.
type Reader struct {
	dec   *json.Decoder
	stack []frame
}

// NewReader returns a Reader for r.
func NewReader(r io.Reader) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec}
}

// NewBytes returns a Reader for b.
func NewBytes(b []byte) *Reader { return NewReader(bytes.NewReader(b)) }

// ErrSyntax reports tokens that do not form valid JSON.
var ErrSyntax = errors.New("json syntax error")

// Next returns the next event, or io.EOF after the last value. Input that
// ends inside an object or array fails with io.ErrUnexpectedEOF.
func (r *Reader) Next() (sheeter.Event, error) {
	tok, err := r.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if len(r.stack) > 0 {
				return sheeter.Event{}, fmt.Errorf("read json: %d unclosed containers: %w", len(r.stack), io.ErrUnexpectedEOF)
			}
			return sheeter.Event{}, io.EOF
		}
		return sheeter.Event{}, fmt.Errorf("read json: %w", err)
	}
	if d, ok := tok.(json.Delim); ok {
		return r.delim(d)
	}
	if s, ok := tok.(string); ok && r.expectingKey() {
		r.top().expectingKey = false
		return sheeter.FieldName(s), nil
	}
	if err := r.checkValue(tok); err != nil {
		return sheeter.Event{}, err
	}
	switch v := tok.(type) {
	case string:
		r.valueDone()
		return sheeter.String(v), nil
	case bool:
		r.valueDone()
		return sheeter.Bool(v), nil
	case json.Number:
		r.valueDone()
		return sheeter.NumberEvent(string(v))
	case float64:
		r.valueDone()
		return sheeter.Float(v), nil
	case nil:
		r.valueDone()
		return sheeter.Null(), nil
	}
	return sheeter.Event{}, fmt.Errorf("%w: json token %T", sheeter.ErrUnsupported, tok)
}

func (r *Reader) delim(d json.Delim) (sheeter.Event, error) {
	switch d {
	case '{', '[':
		if err := r.checkValue(d); err != nil {
			return sheeter.Event{}, err
		}
		if d == '{' {
			r.stack = append(r.stack, frame{kind: kindObject, expectingKey: true})
			return sheeter.StartObject(), nil
		}
		r.stack = append(r.stack, frame{kind: kindArray})
		return sheeter.StartArray(), nil
	case '}':
		top := r.top()
		if top == nil || top.kind != kindObject {
			return sheeter.Event{}, fmt.Errorf("%w: unexpected '}'", ErrSyntax)
		}
		if !top.expectingKey {
			return sheeter.Event{}, fmt.Errorf("%w: object field without a value", ErrSyntax)
		}
		r.pop()
		return sheeter.EndObject(), nil
	case ']':
		if top := r.top(); top == nil || top.kind != kindArray {
			return sheeter.Event{}, fmt.Errorf("%w: unexpected ']'", ErrSyntax)
		}
		r.pop()
		return sheeter.EndArray(), nil
	}
	return sheeter.Event{}, fmt.Errorf("%w: delimiter %q", ErrSyntax, rune(d))
}

// checkValue rejects a value where an object expects a field name.
func (r *Reader) checkValue(tok json.Token) error {
	if r.expectingKey() {
		return fmt.Errorf("%w: expected a field name, got %v", ErrSyntax, tok)
	}
	return nil
}

func (r *Reader) top() *frame {
	if n := len(r.stack); n > 0 {
		return &r.stack[n-1]
	}
	return nil
}

func (r *Reader) expectingKey() bool {
	top := r.top()
	return top != nil && top.kind == kindObject && top.expectingKey
}

// pop closes a container, which completes the value of an enclosing field.
func (r *Reader) pop() {
	r.stack = r.stack[:len(r.stack)-1]
	r.valueDone()
}

func (r *Reader) valueDone() {
	if top := r.top(); top != nil && top.kind == kindObject {
		top.expectingKey = true
	}
}

// Copy feeds every event read from src into g and returns how many were
// written. It does not close g.
func Copy(g *sheeter.Generator, src io.Reader) (int, error) {
	r := NewReader(src)
	n := 0
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := g.WriteEvent(e); err != nil {
			return n, err
		}
		n++
	}
}

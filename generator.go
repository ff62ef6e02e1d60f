package sheeter

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// State is the position of a Generator in the event stream.
type State int

const (
	StateRoot State = iota
	StateInObject
	StateInArrayAtRoot
	StateInArrayInObject
	// StateNested covers contexts only reachable inside a skipped value.
	StateNested
)

func (s State) String() string {
	switch s {
	case StateRoot:
		return "ROOT"
	case StateInObject:
		return "IN_OBJECT"
	case StateInArrayAtRoot:
		return "IN_ARRAY_AT_ROOT"
	case StateInArrayInObject:
		return "IN_ARRAY_IN_OBJECT"
	default:
		return "NESTED"
	}
}

// ColumnError reports a field name that resolves to no column.
type ColumnError struct {
	Name  string
	Known []string
}

func (e *ColumnError) Error() string {
	quoted := make([]string, len(e.Known))
	for i, k := range e.Known {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return fmt.Sprintf("%s: unrecognized column %q: known columns: [%s]", ErrSchema, e.Name, strings.Join(quoted, ","))
}

func (e *ColumnError) Unwrap() error { return ErrSchema }

// Generator translates write events into rows of cells on a Sink.
//
// A Generator is not safe for concurrent use. Any error leaves it terminal:
// later writes fail with ErrTerminated. Close must still be called to
// release the sink.
type Generator struct {
	sink   Sink
	schema *Schema
	opts   Options
	log    *zap.Logger

	ctx           contextStack
	headerPending bool

	// column is the target of the next value, set by the last field name.
	column    Column
	hasColumn bool
	hint      int

	// skipValue is set while the current field is unknown and ignored.
	skipValue bool
	// skipWithin is the depth of the context a skipped structured value
	// was started in, or -1.
	skipWithin int

	array arrayCell

	written []bool
	touched []int
	rows    int

	err    error
	closed bool
}

// New returns a Generator writing to sink. schema resolves field names to
// columns; it may be nil only if no field is ever written.
func New(sink Sink, schema *Schema, opts Options) *Generator {
	opts = opts.withDefaults()
	g := &Generator{
		sink:          sink,
		schema:        schema,
		opts:          opts,
		log:           opts.Logger,
		ctx:           newContextStack(),
		headerPending: true,
		skipWithin:    -1,
	}
	if schema != nil {
		g.written = make([]bool, schema.Width())
	}
	return g
}

// Schema returns the schema the generator resolves columns with.
func (g *Generator) Schema() *Schema { return g.schema }

// Rows returns the number of rows committed to the sink, header included.
func (g *Generator) Rows() int { return g.rows }

// State returns the current translator state.
func (g *Generator) State() State {
	switch g.ctx.top().kind {
	case ctxRoot:
		return StateRoot
	case ctxObject:
		if g.ctx.depth() == 1 || g.ctx.parentKind() == ctxArray && g.ctx.depth() == 2 {
			return StateInObject
		}
	case ctxArray:
		switch {
		case g.ctx.depth() == 1:
			return StateInArrayAtRoot
		case g.ctx.parentKind() == ctxObject && g.array.active:
			return StateInArrayInObject
		}
	}
	return StateNested
}

// Write applies events in order. It stops at the first error.
func (g *Generator) Write(events ...Event) error {
	for _, e := range events {
		if err := g.WriteEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvent applies one event.
func (g *Generator) WriteEvent(e Event) error {
	if g.closed {
		return fmt.Errorf("%w: generator is closed", ErrTerminated)
	}
	if g.err != nil {
		return fmt.Errorf("%w: %w", ErrTerminated, g.err)
	}
	if err := g.dispatch(e); err != nil {
		g.err = err
		g.log.Debug("write failed", zap.Stringer("event", e.Kind), zap.Error(err))
		return err
	}
	return nil
}

// WriteField writes a field name followed by a scalar value.
func (g *Generator) WriteField(name string, value Event) error {
	return g.Write(FieldName(name), value)
}

func (g *Generator) dispatch(e Event) error {
	switch e.Kind {
	case KindStartObject:
		return g.startObject()
	case KindEndObject:
		return g.endObject()
	case KindStartArray:
		return g.startArray()
	case KindEndArray:
		return g.endArray()
	case KindFieldName:
		return g.fieldName(e.Text)
	case KindRaw:
		return fmt.Errorf("%w: raw values cannot be placed in a cell", ErrUnsupported)
	}
	if e.isScalar() {
		return g.scalar(e)
	}
	return fmt.Errorf("%w: event %s", ErrUnsupported, e.Kind)
}

// verifyValue checks that a value may be written here and writes the
// header before the first value.
func (g *Generator) verifyValue(what string) error {
	if err := g.ctx.value(what); err != nil {
		return err
	}
	if g.headerPending {
		return g.emitHeader()
	}
	return nil
}

func (g *Generator) startObject() error {
	if err := g.verifyValue("start an object"); err != nil {
		return err
	}
	// Objects live at the root or directly inside a root-level array,
	// unless they belong to an ignored field.
	top := g.ctx.top().kind
	if top == ctxObject || (top == ctxArray && g.ctx.parentKind() != ctxRoot) {
		if g.skipWithin < 0 {
			if !g.skipValue {
				return fmt.Errorf("%w: nested objects are not supported (column %q)", ErrStructural, g.column.name)
			}
			g.skipWithin = g.ctx.depth()
		}
	}
	g.ctx.enter(ctxObject)
	return nil
}

func (g *Generator) endObject() error {
	if err := g.ctx.exit(ctxObject); err != nil {
		return err
	}
	if g.skipWithin >= 0 {
		if g.ctx.depth() == g.skipWithin {
			g.skipWithin = -1
		}
		return nil
	}
	return g.finishRow()
}

func (g *Generator) startArray() error {
	if err := g.verifyValue("start an array"); err != nil {
		return err
	}
	switch g.ctx.top().kind {
	case ctxObject:
		switch {
		case g.skipWithin >= 0:
		case g.skipValue:
			g.skipWithin = g.ctx.depth()
		default:
			sep, err := g.schema.separatorFor(g.column)
			if err != nil {
				return err
			}
			g.array.start(g.column, sep)
		}
	case ctxArray:
		if g.skipWithin < 0 {
			return fmt.Errorf("%w: nested arrays", ErrUnsupported)
		}
	}
	g.ctx.enter(ctxArray)
	return nil
}

func (g *Generator) endArray() error {
	if err := g.ctx.exit(ctxArray); err != nil {
		return err
	}
	if g.skipWithin >= 0 {
		if g.ctx.depth() == g.skipWithin {
			g.skipWithin = -1
		}
		return nil
	}
	if g.array.active {
		col := g.array.col
		return g.writeCell(col, TextValue(g.array.finish()))
	}
	// The end of a root-level array; its objects already ended their rows.
	return g.finishRow()
}

func (g *Generator) fieldName(name string) error {
	if err := g.ctx.fieldName(name); err != nil {
		return err
	}
	if g.schema == nil {
		return fmt.Errorf("%w: unrecognized column %q, cannot resolve without a schema", ErrSchema, name)
	}
	if g.skipWithin >= 0 {
		g.skipValue = true
		g.hasColumn = false
		return nil
	}
	col, ok := g.schema.Lookup(name, g.hint)
	if !ok {
		if g.opts.IgnoreUnknown {
			g.log.Debug("skipping unknown field", zap.String("field", name))
			g.skipValue = true
			g.hasColumn = false
			return nil
		}
		return &ColumnError{Name: name, Known: g.schema.Names()}
	}
	g.skipValue = false
	g.column = col
	g.hasColumn = true
	g.hint = col.pos + 1
	return nil
}

func (g *Generator) scalar(e Event) error {
	if err := g.verifyValue("write " + e.Kind.String() + " value"); err != nil {
		return err
	}
	if g.skipValue {
		return nil
	}
	if g.array.active {
		g.array.add(g.elementText(e))
		return nil
	}
	if !g.hasColumn || g.ctx.top().kind != ctxObject {
		if e.Kind == KindNull {
			// a null record is dropped
			return nil
		}
		return fmt.Errorf("%w: %s value without a preceding field name", ErrStructural, e.Kind)
	}
	return g.writeCell(g.column, g.cellValue(e))
}

func (g *Generator) cellValue(e Event) Value {
	switch e.Kind {
	case KindString:
		return TextValue(e.Text)
	case KindBool:
		return BooleanValue(e.Bool)
	case KindBinary:
		return TextValue(g.opts.Base64.EncodeToString(e.Bytes))
	case KindNull:
		return BlankValue()
	}
	return g.numberCell(e)
}

func (g *Generator) elementText(e Event) string {
	switch e.Kind {
	case KindString:
		return e.Text
	case KindBool:
		if e.Bool {
			return "true"
		}
		return "false"
	case KindBinary:
		return g.opts.Base64.EncodeToString(e.Bytes)
	case KindNull:
		return g.schema.nullFor(g.array.col)
	}
	return g.numberText(e)
}

func (g *Generator) writeCell(col Column, v Value) error {
	if col.index < len(g.written) {
		if g.written[col.index] {
			return fmt.Errorf("%w: column %q written twice in one row", ErrStructural, col.name)
		}
		g.written[col.index] = true
	}
	g.touched = append(g.touched, col.index)
	return g.sink.WriteCell(col.index, v)
}

// finishRow commits the row under construction, if any cell was written.
func (g *Generator) finishRow() error {
	g.hint = 0
	g.hasColumn = false
	g.skipValue = false
	if len(g.touched) == 0 {
		return nil
	}
	for _, i := range g.touched {
		if i < len(g.written) {
			g.written[i] = false
		}
	}
	g.touched = g.touched[:0]
	g.rows++
	return g.sink.EndRow()
}

// Close commits a pending row, writes a header that was never triggered
// (for example when no data was written) and closes the sink. An array
// still open is folded into its cell first. The sink is closed even when
// an earlier write failed; the failed row is not committed. Close is
// idempotent.
func (g *Generator) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	var errs []error
	if g.err == nil {
		if g.array.active {
			errs = append(errs, g.writeCell(g.array.col, TextValue(g.array.finish())))
		}
		errs = append(errs, g.finishRow())
	}
	if g.headerPending {
		errs = append(errs, g.emitHeader())
	}
	errs = append(errs, g.sink.Close())
	g.log.Debug("closed", zap.Int("rows", g.rows))
	return errors.Join(errs...)
}

func zapColumns(s *Schema) zap.Field {
	return zap.Strings("columns", s.Names())
}

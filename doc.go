// Package sheeter turns streams of structured write events into rows of
// typed cells.
//
// A [Generator] accepts events (object and array boundaries, field names,
// scalars) and places each field's value in the column of a [Schema] that
// carries the field's name. Every root-level object becomes one row:
//
//	schema, _ := sheeter.NewSchemaBuilder().
//		AddColumn("id").
//		AddColumn("name").
//		AddArrayColumn("tags", ";").
//		SetUseHeader(true).
//		Build()
//
//	sink, _ := sheeter.NewSink(os.Stdout, sheeter.CSV, schema)
//	g := sheeter.New(sink, schema, sheeter.Options{})
//	g.Write(
//		sheeter.StartObject(),
//		sheeter.FieldName("id"), sheeter.Int(1),
//		sheeter.FieldName("tags"), sheeter.StartArray(),
//		sheeter.String("a"), sheeter.String("b"),
//		sheeter.EndArray(),
//		sheeter.EndObject(),
//	)
//	g.Close()
//
// writes
//
//	id,name,tags
//	1,,a;b
//
// # Shapes
//
// The event stream may be a single object, a sequence of objects or one
// root-level array of objects. An array written as a field value is folded
// into one text cell, its elements joined by the column separator. Objects
// nested inside a record and arrays nested inside arrays are rejected,
// except under a field that is being skipped.
//
// # Unknown fields
//
// A field name that matches no column fails with a [*ColumnError]. With
// [Options].IgnoreUnknown the field and everything nested under it is
// skipped instead.
//
// # Numbers
//
// Numbers become numeric cells unless [Options].NumbersAsText is set.
// Integers beyond int64 are kept exact as text by default, see
// [BigNumbers]. Exact fractions travel as [Decimal].
//
// # Header
//
// When the schema asks for a header, it is written once, before the first
// value, or by Close when nothing was written.
//
// # Sinks
//
// [NewSink] builds a [Sink] for a [Format]. CSV, TSV and JSONL emit each
// row as it ends. JSON, YAML, Table, Markdown, HTML, Parquet and
// [GoTemplate] collect the sheet and render it on Close. [Sheet] keeps rows
// in memory.
//
// # Go values
//
// [Encode] walks a Go value and writes it as events. [Write], [Marshal],
// [WriteIter] and [WriteChan] encode items straight into a format, and
// [SchemaFor] derives a schema from the "sheet" struct tags.
//
// # Errors
//
// Errors wrap one of [ErrStructural], [ErrSchema], [ErrConfiguration] or
// [ErrUnsupported]. After any error the generator is terminal: further
// writes fail with [ErrTerminated]. Close still releases the sink.
package sheeter

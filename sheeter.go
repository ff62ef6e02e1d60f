package sheeter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrStructural reports events that do not pair up or nest as
	// allowed, or a value without a preceding field name.
	ErrStructural = errors.New("structural error")
	// ErrSchema reports a missing schema, an unknown column or a schema
	// that cannot produce the requested output.
	ErrSchema = errors.New("schema error")
	// ErrConfiguration reports options that cannot serve the events
	// written, such as an array value for a column without a separator.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnsupported reports event kinds the translator does not handle.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrTerminated is returned by every write after a failure or Close.
	ErrTerminated = errors.New("generator terminated")

	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// Format represents an output format.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	Table    Format = "table"
	Markdown Format = "markdown"
	TSV      Format = "tsv"
	JSONL    Format = "jsonl"
	HTML     Format = "html"
	Parquet  Format = "parquet"
)

const goTemplatePrefix = "go-template="

var formats = []Format{JSON, YAML, CSV, Table, Markdown, TSV, JSONL, HTML, Parquet}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row using a Go
// text/template. See [RowData] for the fields available to the template.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// NewSink returns a sink that writes format f to w. schema sizes the
// output columns and names them where the format needs names.
func NewSink(w io.Writer, f Format, schema *Schema, opts ...SinkOption) (Sink, error) {
	cfg := newSinkConfig(schema, opts)
	switch f {
	case CSV:
		return newCSVSink(w, cfg), nil
	case TSV:
		return newTSVSink(w, cfg), nil
	case JSONL:
		return newJSONLSink(w, cfg), nil
	case JSON:
		return newCollectSink(w, cfg, renderJSON), nil
	case YAML:
		return newCollectSink(w, cfg, renderYAML), nil
	case Table:
		return newCollectSink(w, cfg, renderTable), nil
	case Markdown:
		return newCollectSink(w, cfg, renderMarkdown), nil
	case HTML:
		return newCollectSink(w, cfg, renderHTML), nil
	case Parquet:
		return newParquetSink(w, cfg)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return newTemplateSink(w, tmpl, cfg)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Write encodes items as rows of format f on w. Each item is one record;
// see [Encode] for the values accepted.
func Write[T any](w io.Writer, f Format, schema *Schema, opts Options, items ...T) error {
	return WriteIter(w, f, schema, opts, func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	})
}

// WriteIter encodes items from an iterator as they arrive. Streaming
// formats (CSV, TSV, JSONL) emit each row immediately; the others render
// when the sequence ends.
func WriteIter[T any](w io.Writer, f Format, schema *Schema, opts Options, seq iter.Seq[T]) error {
	sink, err := NewSink(w, f, schema)
	if err != nil {
		return err
	}
	g := New(sink, schema, opts)
	var encErr error
	seq(func(item T) bool {
		encErr = Encode(g, item)
		return encErr == nil
	})
	return errors.Join(encErr, g.Close())
}

// WriteChan encodes items received from ch until it is closed.
func WriteChan[T any](w io.Writer, f Format, schema *Schema, opts Options, ch <-chan T) error {
	return WriteIter(w, f, schema, opts, func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	})
}

// Marshal encodes items and returns the bytes.
func Marshal[T any](f Format, schema *Schema, opts Options, items ...T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, schema, opts, items...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

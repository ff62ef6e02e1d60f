package sheeter

import (
	"fmt"
	"io"
)

// streamSink emits each row as soon as it ends. Formats whose rows are
// independent (CSV, TSV, JSONL) build on it.
type streamSink struct {
	row    []Value
	width  int
	n      int
	open   bool
	closed bool
	emit   func(row []Value) error
	flush  func() error
}

func newStreamSink(width int, emit func([]Value) error, flush func() error) *streamSink {
	return &streamSink{row: make([]Value, width), width: width, emit: emit, flush: flush}
}

func (s *streamSink) WriteCell(column int, v Value) error {
	if s.closed {
		return fmt.Errorf("%w: sink is closed", ErrTerminated)
	}
	if column < 0 {
		return fmt.Errorf("%w: negative column %d", ErrStructural, column)
	}
	if column >= len(s.row) {
		s.row = append(s.row, make([]Value, column+1-len(s.row))...)
	}
	s.open = true
	s.row[column] = v
	s.n = max(s.n, column+1)
	return nil
}

func (s *streamSink) EndRow() error {
	if !s.open {
		return nil
	}
	// Rows span every schema column even when trailing cells are blank.
	err := s.emit(s.row[:max(s.n, s.width)])
	clear(s.row)
	s.n = 0
	s.open = false
	return err
}

func (s *streamSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.flush == nil {
		return nil
	}
	return s.flush()
}

// collectSink buffers the whole sheet and renders it on Close. Formats that
// need every row for layout (Table, Markdown, HTML) or a single document
// (JSON, YAML) build on it.
type collectSink struct {
	*Sheet
	w      io.Writer
	cfg    sinkConfig
	header []string
	render func(*collectSink) error
}

func newCollectSink(w io.Writer, cfg sinkConfig, render func(*collectSink) error) *collectSink {
	return &collectSink{Sheet: NewSheet(), w: w, cfg: cfg, render: render}
}

// WriteHeader keeps the header apart so layouts can style it.
func (s *collectSink) WriteHeader(names []string) error {
	s.header = names
	return nil
}

func (s *collectSink) Close() error {
	if s.closed {
		return nil
	}
	if err := s.Sheet.Close(); err != nil {
		return err
	}
	return s.render(s)
}

// width is the number of columns to lay out.
func (s *collectSink) width() int {
	return max(s.cfg.width, len(s.header), s.Width())
}

// stringRows returns every row as text spread over width columns.
func (s *collectSink) stringRows(width int) [][]string {
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Strings(width)
	}
	return out
}

// alignments resolves AlignAuto per column: right when every non-blank
// cell of the column is numeric.
func (s *collectSink) alignments(width int) []Alignment {
	out := make([]Alignment, width)
	copy(out, s.cfg.aligns)
	numeric := make([]bool, width)
	seen := make([]bool, width)
	for i := range numeric {
		numeric[i] = true
	}
	for _, r := range s.rows {
		for _, c := range r {
			if c.Column >= width || c.Value.Kind() == Blank {
				continue
			}
			seen[c.Column] = true
			if !c.Value.IsNumeric() {
				numeric[c.Column] = false
			}
		}
	}
	for i, a := range out {
		if a != AlignAuto {
			continue
		}
		if seen[i] && numeric[i] {
			out[i] = AlignRight
		} else {
			out[i] = AlignLeft
		}
	}
	return out
}

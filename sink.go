package sheeter

import (
	"fmt"
	"slices"
)

// Sink receives cells row by row. A row begins with the first cell written
// after the previous EndRow. EndRow without a cell is a no-op. Close
// finalizes the output and is always the last call.
type Sink interface {
	WriteCell(column int, v Value) error
	EndRow() error
	Close() error
}

// Row is a committed row. Cells keep the order they were written in.
type Row []Cell

// Get returns the value at column and whether the row holds a cell there.
func (r Row) Get(column int) (Value, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return Value{}, false
}

// Values spreads the row over width columns; missing cells are Blank.
func (r Row) Values(width int) []Value {
	out := make([]Value, width)
	for _, c := range r {
		if c.Column < width {
			out[c.Column] = c.Value
		}
	}
	return out
}

// Strings spreads the row over width columns as text.
func (r Row) Strings(width int) []string {
	out := make([]string, width)
	for _, c := range r {
		if c.Column < width {
			out[c.Column] = c.Value.String()
		}
	}
	return out
}

// Width returns one past the largest column index in the row.
func (r Row) Width() int {
	n := 0
	for _, c := range r {
		n = max(n, c.Column+1)
	}
	return n
}

// Sheet is an in-memory Sink. The collecting format sinks build on it and
// it is useful on its own for inspecting output.
type Sheet struct {
	rows    []Row
	current Row
	open    bool
	closed  bool
}

// NewSheet returns an empty sheet.
func NewSheet() *Sheet { return &Sheet{} }

func (s *Sheet) WriteCell(column int, v Value) error {
	if s.closed {
		return fmt.Errorf("%w: sheet is closed", ErrTerminated)
	}
	if column < 0 {
		return fmt.Errorf("%w: negative column %d", ErrStructural, column)
	}
	if !s.open {
		s.open = true
		s.current = make(Row, 0, max(8, len(s.current)))
	}
	s.current = append(s.current, Cell{Column: column, Value: v})
	return nil
}

func (s *Sheet) EndRow() error {
	if !s.open {
		return nil
	}
	s.rows = append(s.rows, s.current)
	s.open = false
	return nil
}

// Close discards a row that was never ended.
func (s *Sheet) Close() error {
	s.closed = true
	s.open = false
	return nil
}

// Rows returns the committed rows.
func (s *Sheet) Rows() []Row { return slices.Clone(s.rows) }

// Len returns the number of committed rows.
func (s *Sheet) Len() int { return len(s.rows) }

// Width returns one past the largest column index used by any row.
func (s *Sheet) Width() int {
	n := 0
	for _, r := range s.rows {
		n = max(n, r.Width())
	}
	return n
}

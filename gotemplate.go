package sheeter

import (
	"fmt"
	"io"
	"text/template"
)

// RowData is what a GoTemplate format executes against for each row.
type RowData struct {
	// Index counts data rows from 1.
	Index int
	// Header holds the column names when the schema writes a header.
	Header []string
	// Cells holds every column's value in column order.
	Cells []Value
	// Fields maps column names to the cell's Go value, nil for blanks.
	Fields map[string]any
}

func newTemplateSink(w io.Writer, tmplStr string, cfg sinkConfig) (*collectSink, error) {
	tmpl, err := template.New("row").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return newCollectSink(w, cfg, func(s *collectSink) error {
		return renderTemplate(s, tmpl)
	}), nil
}

func renderTemplate(s *collectSink, tmpl *template.Template) error {
	width := s.width()
	var columns []Column
	if s.cfg.schema != nil {
		columns = s.cfg.schema.columns
	}
	for i, r := range s.rows {
		data := RowData{
			Index:  i + 1,
			Header: s.header,
			Cells:  r.Values(width),
			Fields: make(map[string]any, len(columns)),
		}
		for _, c := range columns {
			data.Fields[c.name] = data.Cells[c.index].Any()
		}
		if err := tmpl.Execute(s.w, data); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(s.w); err != nil {
			return err
		}
	}
	return nil
}

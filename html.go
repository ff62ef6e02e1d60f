package sheeter

import (
	"fmt"
	"html"
	"io"
)

func renderHTML(s *collectSink) error {
	width := s.width()
	aligns := s.alignments(width)
	w := s.w

	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if s.cfg.title != "" {
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(s.cfg.title)); err != nil {
			return err
		}
	}
	if s.header != nil {
		if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
			return err
		}
		header := make([]string, width)
		copy(header, s.header)
		if err := writeHTMLRow(w, "th", header, aligns); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range s.stringRows(width) {
		if err := writeHTMLRow(w, "td", row, aligns); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func writeHTMLRow(w io.Writer, tag string, cells []string, aligns []Alignment) error {
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for i, cell := range cells {
		if _, err := fmt.Fprintf(w, "      <%s%s>%s</%s>\n", tag, alignStyle(aligns, i), html.EscapeString(cell), tag); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "    </tr>")
	return err
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}

package sheeter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderMarkdown writes a GitHub-flavored Markdown table. Markdown tables
// need a header line; without one the column numbers stand in.
func renderMarkdown(s *collectSink) error {
	if len(s.rows) == 0 && len(s.header) == 0 {
		return nil
	}
	width := s.width()
	header := make([]string, width)
	copy(header, s.header)
	if s.header == nil {
		for i := range header {
			header[i] = fmt.Sprintf("%d", i+1)
		}
	}
	rows := s.stringRows(width)
	aligns := s.alignments(width)

	// Minimum width 3 leaves room for the alignment markers.
	widths := make([]int, width)
	for i := range widths {
		widths[i] = max(3, runewidth.StringWidth(markdownEscape(header[i])))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(markdownEscape(cell)))
		}
	}

	if err := writeMarkdownRow(s.w, header, widths, aligns); err != nil {
		return err
	}
	sep := make([]string, width)
	for i, w := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", w-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", w-2) + ":"
		default:
			sep[i] = strings.Repeat("-", w)
		}
	}
	if _, err := fmt.Fprintf(s.w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(s.w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", "<br>", "\r", "")

func markdownEscape(s string) string { return markdownEscaper.Replace(s) }

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(markdownEscape(cells[i]), width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

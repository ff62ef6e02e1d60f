package sheeter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// tableGrid is the sheet laid out as text, ready to draw.
type tableGrid struct {
	header []string
	rows   [][]string
	widths []int
	aligns []Alignment
}

func newTableGrid(s *collectSink) tableGrid {
	width := s.width()
	g := tableGrid{
		header: s.header,
		rows:   s.stringRows(width),
		aligns: s.alignments(width),
	}
	if len(g.header) > 0 && len(g.header) < width {
		g.header = append(g.header, make([]string, width-len(g.header))...)
	}
	if s.cfg.numbered {
		if len(g.header) > 0 {
			g.header = append([]string{s.cfg.numHeader}, g.header...)
		}
		for i, row := range g.rows {
			g.rows[i] = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		g.aligns = append([]Alignment{AlignRight}, g.aligns...)
		width++
	}
	g.widths = make([]int, width)
	for i, h := range g.header {
		g.widths[i] = max(g.widths[i], runewidth.StringWidth(h))
	}
	for _, row := range g.rows {
		for i, cell := range row {
			g.widths[i] = max(g.widths[i], runewidth.StringWidth(cell))
		}
	}
	maxWidths := s.cfg.maxWidths
	if s.cfg.numbered && len(maxWidths) > 0 {
		maxWidths = append([]int{0}, maxWidths...)
	}
	for i, limit := range maxWidths {
		if i < width && limit > 0 && g.widths[i] > limit {
			g.widths[i] = limit
		}
	}
	return g
}

func renderTable(s *collectSink) error {
	if len(s.rows) == 0 && len(s.header) == 0 {
		return nil
	}
	g := newTableGrid(s)
	var err error
	if s.cfg.border == BorderNone {
		err = renderPlainTable(s.w, g)
	} else {
		err = renderBorderedTable(s.w, s.cfg.title, g, borderSets[s.cfg.border])
	}
	if err != nil {
		return err
	}
	if s.cfg.caption != "" {
		_, err = fmt.Fprintln(s.w, s.cfg.caption)
	}
	return err
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, g tableGrid) error {
	if len(g.header) > 0 {
		if err := writePlainRow(w, g.header, g); err != nil {
			return err
		}
		sep := make([]string, len(g.widths))
		for i, width := range g.widths {
			sep[i] = strings.Repeat("-", width)
		}
		if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
			return err
		}
	}
	for _, row := range g.rows {
		if err := writePlainRow(w, row, g); err != nil {
			return err
		}
	}
	return nil
}

func writePlainRow(w io.Writer, cells []string, g tableGrid) error {
	parts := make([]string, len(g.widths))
	for i, width := range g.widths {
		parts[i] = formatTableCell(cells[i], width, g.aligns[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, title string, g tableGrid, bc borderChars) error {
	if title != "" {
		if err := drawHLine(w, g.widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(g.widths) - 2
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, alignCell(title, inner, AlignCenter), bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, g.widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else if err := drawHLine(w, g.widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}

	if len(g.header) > 0 {
		if err := drawBorderedRow(w, g.header, g, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, g.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
	}
	for _, row := range g.rows {
		if err := drawBorderedRow(w, row, g, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, g.widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth returns the character width between the outer borders:
// each cell plus one space of padding per side, and one border per gap.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, g tableGrid, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range g.widths {
		sb.WriteString(" ")
		sb.WriteString(formatTableCell(cells[i], width, g.aligns[i]))
		sb.WriteString(" ")
		if i < len(g.widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

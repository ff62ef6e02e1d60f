package sheeter

import (
	"github.com/goccy/go-json"
)

// renderJSON writes the sheet as one JSON array of row arrays, the header
// first when there is one.
func renderJSON(s *collectSink) error {
	enc := json.NewEncoder(s.w)
	enc.SetEscapeHTML(false)
	if s.cfg.indent != "" {
		enc.SetIndent("", s.cfg.indent)
	}
	return enc.Encode(documentRows(s))
}

func documentRows(s *collectSink) [][]any {
	width := s.width()
	out := make([][]any, 0, len(s.rows)+1)
	if s.header != nil {
		h := make([]any, width)
		for i, name := range s.header {
			h[i] = name
		}
		out = append(out, h)
	}
	for _, r := range s.rows {
		vals := r.Values(width)
		row := make([]any, width)
		for i, v := range vals {
			row[i] = v.Any()
		}
		out = append(out, row)
	}
	return out
}

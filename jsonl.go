package sheeter

import (
	"io"

	"github.com/goccy/go-json"
)

// newJSONLSink writes each row as a JSON array on its own line. Blank
// cells are null.
func newJSONLSink(w io.Writer, cfg sinkConfig) *streamSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	var record []any
	emit := func(row []Value) error {
		record = record[:0]
		for _, v := range row {
			record = append(record, v.Any())
		}
		return enc.Encode(record)
	}
	return newStreamSink(cfg.width, emit, nil)
}

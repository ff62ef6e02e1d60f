package sheeter

import (
	"encoding/csv"
	"io"
)

func newCSVSink(w io.Writer, cfg sinkConfig) *streamSink {
	cw := csv.NewWriter(w)
	cw.Comma = cfg.delimiter
	var record []string
	emit := func(row []Value) error {
		record = record[:0]
		for _, v := range row {
			record = append(record, v.String())
		}
		return cw.Write(record)
	}
	flush := func() error {
		cw.Flush()
		return cw.Error()
	}
	return newStreamSink(cfg.width, emit, flush)
}

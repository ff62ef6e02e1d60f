package sheeter

import (
	"bufio"
	"io"
	"strings"
)

// tsvEscaper keeps a cell on one line and inside its column.
var tsvEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`, `\`, `\\`)

func newTSVSink(w io.Writer, cfg sinkConfig) *streamSink {
	bw := bufio.NewWriter(w)
	emit := func(row []Value) error {
		for i, v := range row {
			if i > 0 {
				if err := bw.WriteByte('\t'); err != nil {
					return err
				}
			}
			if _, err := tsvEscaper.WriteString(bw, v.String()); err != nil {
				return err
			}
		}
		return bw.WriteByte('\n')
	}
	return newStreamSink(cfg.width, emit, bw.Flush)
}

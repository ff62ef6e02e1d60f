package sheeter

import "fmt"

// HeaderWriter is implemented by sinks that render the header apart from
// the data rows. names holds each column name at its column index. Sinks
// without it receive the header as an ordinary row of text cells.
type HeaderWriter interface {
	WriteHeader(names []string) error
}

// emitHeader writes the header row once, if the schema asks for one.
func (g *Generator) emitHeader() error {
	g.headerPending = false
	if g.schema == nil || !g.schema.UsesHeader() {
		return nil
	}
	if g.schema.Len() == 0 {
		return fmt.Errorf("%w: schema specifies a header row but contains no column names", ErrSchema)
	}
	g.log.Debug("writing header", zapColumns(g.schema))
	if hw, ok := g.sink.(HeaderWriter); ok {
		if err := hw.WriteHeader(g.schema.headerRow()); err != nil {
			return err
		}
		g.rows++
		return nil
	}
	for _, col := range g.schema.columns {
		if err := g.writeCell(col, TextValue(col.name)); err != nil {
			return err
		}
	}
	return g.finishRow()
}

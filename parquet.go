package sheeter

import (
	"fmt"
	"io"

	"github.com/segmentio/parquet-go"
)

// newParquetSink collects the sheet and writes it as one Parquet file on
// Close. Every schema column becomes an optional leaf and blank cells are
// nulls. The header lives in the Parquet schema, so it is never a row.
func newParquetSink(w io.Writer, cfg sinkConfig) (*collectSink, error) {
	if cfg.schema == nil || cfg.schema.Len() == 0 {
		return nil, fmt.Errorf("%w: parquet output needs a schema with columns", ErrSchema)
	}
	return newCollectSink(w, cfg, renderParquet), nil
}

type parquetKind int

const (
	parquetString parquetKind = iota
	parquetInt64
	parquetDouble
	parquetBoolean
)

func (k parquetKind) node() parquet.Node {
	switch k {
	case parquetInt64:
		return parquet.Optional(parquet.Int(64))
	case parquetDouble:
		return parquet.Optional(parquet.Leaf(parquet.DoubleType))
	case parquetBoolean:
		return parquet.Optional(parquet.Leaf(parquet.BooleanType))
	default:
		return parquet.Optional(parquet.String())
	}
}

// columnKind picks the physical type of a column from its declared type,
// or from the values it holds when the type is auto.
func columnKind(col Column, rows []Row) (parquetKind, error) {
	var ints, floats, bools, texts int
	for _, r := range rows {
		v, ok := r.Get(col.index)
		if !ok {
			continue
		}
		switch v.Kind() {
		case Integer:
			ints++
		case Number:
			floats++
		case Boolean:
			bools++
		case Text:
			texts++
		}
	}
	switch col.typ {
	case TypeString:
		return parquetString, nil
	case TypeNumber:
		if texts+bools > 0 {
			return 0, fmt.Errorf("%w: column %q is declared number but holds non-numeric cells", ErrConfiguration, col.name)
		}
		return parquetDouble, nil
	case TypeBoolean:
		if texts+ints+floats > 0 {
			return 0, fmt.Errorf("%w: column %q is declared boolean but holds non-boolean cells", ErrConfiguration, col.name)
		}
		return parquetBoolean, nil
	}
	switch total := ints + floats + bools + texts; {
	case total == 0 || texts > 0:
		return parquetString, nil
	case ints == total:
		return parquetInt64, nil
	case ints+floats == total:
		return parquetDouble, nil
	case bools == total:
		return parquetBoolean, nil
	}
	return parquetString, nil
}

func parquetValue(v Value, k parquetKind, columnIndex int) parquet.Value {
	if v.Kind() == Blank {
		return parquet.Value{}.Level(0, 0, columnIndex)
	}
	var pv parquet.Value
	switch k {
	case parquetInt64:
		pv = parquet.Int64Value(v.Int())
	case parquetDouble:
		pv = parquet.DoubleValue(v.Float())
	case parquetBoolean:
		pv = parquet.BooleanValue(v.Bool())
	default:
		pv = parquet.ByteArrayValue([]byte(v.String()))
	}
	return pv.Level(0, 1, columnIndex)
}

func renderParquet(s *collectSink) error {
	columns := s.cfg.schema.columns
	kinds := make(map[string]parquetKind, len(columns))
	group := make(parquet.Group, len(columns))
	for _, col := range columns {
		k, err := columnKind(col, s.rows)
		if err != nil {
			return err
		}
		kinds[col.name] = k
		group[col.name] = k.node()
	}
	schema := parquet.NewSchema("sheet", group)

	// Leaf order is decided by the parquet schema, not by column order.
	type leaf struct {
		col   Column
		kind  parquetKind
		index int
	}
	leaves := make([]leaf, len(columns))
	for _, col := range columns {
		lc, ok := schema.Lookup(col.name)
		if !ok {
			return fmt.Errorf("%w: parquet schema lost column %q", ErrSchema, col.name)
		}
		leaves[lc.ColumnIndex] = leaf{col: col, kind: kinds[col.name], index: lc.ColumnIndex}
	}

	pw := parquet.NewWriter(s.w, schema)
	rows := make([]parquet.Row, 0, len(s.rows))
	for _, r := range s.rows {
		vals := r.Values(s.cfg.width)
		row := make(parquet.Row, len(leaves))
		for i, l := range leaves {
			row[i] = parquetValue(vals[l.col.index], l.kind, l.index)
		}
		rows = append(rows, row)
	}
	if _, err := pw.WriteRows(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return pw.Close()
}

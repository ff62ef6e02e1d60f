package sheeter_test

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/sheeter"
)

type taggedOrder struct {
	ID     string   `sheet:"id"`
	Tags   []string `sheet:"tags,sep=;"`
	Amount float64  `sheet:"amount"`
	Secret string   `sheet:"-"`
}

func taggedSchema(t *testing.T) *sheeter.Schema {
	t.Helper()
	s, err := sheeter.SchemaFor[taggedOrder]()
	require.NoError(t, err)
	return s.WithHeader(true)
}

func TestWriteStructs(t *testing.T) {
	t.Parallel()
	orders := []taggedOrder{
		{ID: "1", Tags: []string{"a", "b"}, Amount: 9.5, Secret: "x"},
		{ID: "2", Amount: 3},
	}
	var buf bytes.Buffer
	err := sheeter.Write(&buf, sheeter.CSV, taggedSchema(t), sheeter.Options{}, orders...)
	require.NoError(t, err)
	assert.Equal(t, "id,tags,amount\n1,a;b,9.5\n2,,3\n", buf.String())
}

func TestWritePointers(t *testing.T) {
	t.Parallel()
	orders := []*taggedOrder{{ID: "1"}, nil, {ID: "2"}}
	var buf bytes.Buffer
	err := sheeter.Write(&buf, sheeter.CSV, taggedSchema(t).WithHeader(false), sheeter.Options{}, orders...)
	require.NoError(t, err)
	assert.Equal(t, "1,,0\n2,,0\n", buf.String())
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()
	out, err := sheeter.Marshal(sheeter.JSON, taggedSchema(t), sheeter.Options{},
		taggedOrder{ID: "1", Tags: []string{"a", "b"}, Amount: 9.5},
		taggedOrder{ID: "2", Amount: 3},
	)
	require.NoError(t, err)
	assert.Equal(t, `[["id","tags","amount"],["1","a;b",9.5],["2",null,3]]`+"\n", string(out))
}

func TestMarshalEmptyWritesHeader(t *testing.T) {
	t.Parallel()
	out, err := sheeter.Marshal[taggedOrder](sheeter.CSV, taggedSchema(t), sheeter.Options{})
	require.NoError(t, err)
	assert.Equal(t, "id,tags,amount\n", string(out))
}

func TestWriteChan(t *testing.T) {
	t.Parallel()
	ch := make(chan taggedOrder, 2)
	ch <- taggedOrder{ID: "1"}
	ch <- taggedOrder{ID: "2"}
	close(ch)
	var buf bytes.Buffer
	err := sheeter.WriteChan(&buf, sheeter.TSV, taggedSchema(t).WithHeader(false), sheeter.Options{}, ch)
	require.NoError(t, err)
	assert.Equal(t, "1\t\t0\n2\t\t0\n", buf.String())
}

func TestWriteIterStopsOnError(t *testing.T) {
	t.Parallel()
	schema, err := sheeter.NewSchemaBuilder().AddColumn("id").Build()
	require.NoError(t, err)
	calls := 0
	seq := func(yield func(map[string]any) bool) {
		for _, m := range []map[string]any{{"id": 1}, {"nope": 2}, {"id": 3}} {
			calls++
			if !yield(m) {
				return
			}
		}
	}
	var buf bytes.Buffer
	err = sheeter.WriteIter(&buf, sheeter.CSV, schema, sheeter.Options{}, seq)
	require.ErrorIs(t, err, sheeter.ErrSchema)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "1\n", buf.String())
}

func TestWriteUnsupportedFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := sheeter.Write(&buf, sheeter.Format("xml"), taggedSchema(t), sheeter.Options{}, taggedOrder{})
	require.ErrorIs(t, err, sheeter.ErrUnsupportedFormat)
}

func TestEncodeValues(t *testing.T) {
	t.Parallel()
	huge, _ := new(big.Int).SetString("123456789012345678901234", 10)
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := map[string]struct {
		value any
		want  any
	}{
		"map":         {value: map[string]any{"v": "x"}, want: "x"},
		"int8":        {value: map[string]int8{"v": -8}, want: int64(-8)},
		"uint":        {value: map[string]uint{"v": 8}, want: int64(8)},
		"float32":     {value: map[string]float32{"v": 0.25}, want: 0.25},
		"bool":        {value: map[string]bool{"v": true}, want: true},
		"nil pointer": {value: map[string]*int{"v": nil}, want: nil},
		"bytes":       {value: map[string][]byte{"v": []byte("hi")}, want: "aGk="},
		"byte array":  {value: map[string][2]string{"v": {"a", "b"}}, want: "a,b"},
		"big int":     {value: map[string]*big.Int{"v": huge}, want: "123456789012345678901234"},
		"big value":   {value: struct{ V big.Int `sheet:"v"` }{V: *big.NewInt(5)}, want: int64(5)},
		"decimal":     {value: map[string]sheeter.Decimal{"v": sheeter.NewDecimal(big.NewInt(15), 1)}, want: 1.5},
		"json number": {value: map[string]json.Number{"v": "12"}, want: int64(12)},
		"time":        {value: map[string]time.Time{"v": stamp}, want: "2024-03-01T12:00:00Z"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			schema, err := sheeter.NewSchemaBuilder().AddColumn("v").SetArraySeparator(",").Build()
			require.NoError(t, err)
			sheet := sheeter.NewSheet()
			g := sheeter.New(sheet, schema, sheeter.Options{})
			require.NoError(t, sheeter.Encode(g, tt.value))
			require.NoError(t, g.Close())
			assert.Equal(t, [][]any{{tt.want}}, grid(sheet, 1))
		})
	}
}

func TestEncodeSliceOfMaps(t *testing.T) {
	t.Parallel()
	schema, err := sheeter.NewSchemaBuilder().AddColumn("a").AddColumn("b").Build()
	require.NoError(t, err)
	sheet := sheeter.NewSheet()
	g := sheeter.New(sheet, schema, sheeter.Options{})
	require.NoError(t, sheeter.Encode(g, []map[string]int{{"b": 2, "a": 1}, {"a": 3}}))
	require.NoError(t, g.Close())
	assert.Equal(t, [][]any{{int64(1), int64(2)}, {int64(3), nil}}, grid(sheet, 2))
}

func TestEncodeEmbeddedPointer(t *testing.T) {
	t.Parallel()
	type Meta struct {
		Owner string `sheet:"owner"`
	}
	type Item struct {
		*Meta
		ID int `sheet:"id"`
	}
	schema, err := sheeter.SchemaFor[Item]()
	require.NoError(t, err)
	sheet := sheeter.NewSheet()
	g := sheeter.New(sheet, schema, sheeter.Options{})
	require.NoError(t, sheeter.Encode(g, []Item{{Meta: &Meta{Owner: "ann"}, ID: 1}, {ID: 2}}))
	require.NoError(t, g.Close())
	assert.Equal(t, [][]any{{"ann", int64(1)}, {nil, int64(2)}}, grid(sheet, 2))
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]any{
		"int map keys": map[int]string{1: "a"},
		"channel":      map[string]chan int{"v": make(chan int)},
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			schema, err := sheeter.NewSchemaBuilder().AddColumn("v").Build()
			require.NoError(t, err)
			g := sheeter.New(sheeter.NewSheet(), schema, sheeter.Options{})
			err = sheeter.Encode(g, value)
			require.ErrorIs(t, err, sheeter.ErrUnsupported)
		})
	}
}

func TestEncodeSkipsDeepUnknownValues(t *testing.T) {
	t.Parallel()
	type node struct {
		Next *node `sheet:"next"`
	}
	deep := &node{}
	cur := deep
	for range 10 {
		cur.Next = &node{}
		cur = cur.Next
	}
	schema, err := sheeter.NewSchemaBuilder().AddColumn("id").Build()
	require.NoError(t, err)
	sheet := sheeter.NewSheet()
	g := sheeter.New(sheet, schema, sheeter.Options{IgnoreUnknown: true})
	require.NoError(t, sheeter.Encode(g, map[string]any{"id": 1, "tree": deep}))
	require.NoError(t, g.Close())
	assert.Equal(t, [][]any{{int64(1)}}, grid(sheet, 1))
}

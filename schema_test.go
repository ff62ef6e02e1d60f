package sheeter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/sheeter"
)

func intPtr(i int) *int { return &i }

func TestSchemaBuildErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		columns []sheeter.ColumnSpec
		wantMsg string
	}{
		"missing name": {
			columns: []sheeter.ColumnSpec{{Name: "a"}, {}},
			wantMsg: "column 1 has no name",
		},
		"negative index": {
			columns: []sheeter.ColumnSpec{{Name: "a", Index: intPtr(-1)}},
			wantMsg: "negative index",
		},
		"shared index": {
			columns: []sheeter.ColumnSpec{{Name: "a"}, {Name: "b", Index: intPtr(0)}},
			wantMsg: "share index 0",
		},
		"duplicate name": {
			columns: []sheeter.ColumnSpec{{Name: "a"}, {Name: "a"}},
			wantMsg: `duplicate column "a"`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := sheeter.SchemaSpec{Columns: tt.columns}.Build()
			require.ErrorIs(t, err, sheeter.ErrSchema)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSchemaColumns(t *testing.T) {
	t.Parallel()
	schema, err := sheeter.SchemaSpec{
		Header:         true,
		ArraySeparator: ",",
		NullValue:      "-",
		Columns: []sheeter.ColumnSpec{
			{Name: "late", Index: intPtr(4)},
			{Name: "first"},
			{Name: "tags", Separator: "|", Type: sheeter.TypeString},
		},
	}.Build()
	require.NoError(t, err)

	assert.Equal(t, 3, schema.Len())
	assert.Equal(t, 5, schema.Width())
	assert.Equal(t, []string{"first", "tags", "late"}, schema.Names())
	assert.True(t, schema.UsesHeader())
	assert.Equal(t, ",", schema.ArraySeparator())
	assert.Equal(t, "-", schema.NullValue())

	tags := schema.Column(1)
	assert.Equal(t, "tags", tags.Name())
	assert.Equal(t, 2, tags.Index())
	assert.True(t, tags.IsArray())
	assert.Equal(t, "|", tags.ArraySeparator())
	assert.Equal(t, sheeter.TypeString, tags.Type())
	_, hasNull := tags.NullValue()
	assert.False(t, hasNull)

	col, ok := schema.Lookup("late", 0)
	require.True(t, ok)
	assert.Equal(t, 4, col.Index())
	_, ok = schema.Lookup("missing", 0)
	assert.False(t, ok)

	assert.Equal(t, `["first","tags","late"]`, schema.ColumnDesc())
}

func TestSchemaCopies(t *testing.T) {
	t.Parallel()
	schema, err := sheeter.NewSchemaBuilder().AddColumn("a").Build()
	require.NoError(t, err)

	withHeader := schema.WithHeader(true)
	assert.True(t, withHeader.UsesHeader())
	assert.False(t, schema.UsesHeader())

	withSep := schema.WithArraySeparator(";")
	assert.Equal(t, ";", withSep.ArraySeparator())
	assert.Empty(t, schema.ArraySeparator())

	cols := schema.Columns()
	cols[0] = sheeter.Column{}
	assert.Equal(t, "a", schema.Column(0).Name())
}

func TestSchemaSpecRoundTrip(t *testing.T) {
	t.Parallel()
	na := "N/A"
	spec := sheeter.SchemaSpec{
		Header: true,
		Columns: []sheeter.ColumnSpec{
			{Name: "id"},
			{Name: "tags", Separator: ";", NullValue: &na},
			{Name: "amount", Index: intPtr(5), Type: sheeter.TypeNumber},
		},
	}
	schema, err := spec.Build()
	require.NoError(t, err)

	again, err := schema.Spec().Build()
	require.NoError(t, err)
	assert.Equal(t, schema.Names(), again.Names())
	assert.Equal(t, schema.Width(), again.Width())
	null, ok := again.Column(1).NullValue()
	assert.True(t, ok)
	assert.Equal(t, "N/A", null)
}

func TestLoadSchema(t *testing.T) {
	t.Parallel()
	doc := `
header: true
array_separator: ";"
null_value: "-"
columns:
  - name: id
  - name: tags
    separator: "|"
  - name: amount
    type: number
    index: 5
`
	schema, err := sheeter.LoadSchema(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, schema.UsesHeader())
	assert.Equal(t, []string{"id", "tags", "amount"}, schema.Names())
	assert.Equal(t, 6, schema.Width())
	assert.Equal(t, sheeter.TypeNumber, schema.Column(2).Type())
	assert.Equal(t, "|", schema.Column(1).ArraySeparator())
}

func TestLoadSchemaErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"unknown key":  "columns:\n  - name: a\n    colour: red\n",
		"bad type":     "columns:\n  - name: a\n    type: date\n",
		"missing name": "columns:\n  - index: 1\n",
		"not yaml":     "columns: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := sheeter.LoadSchema(strings.NewReader(doc))
			require.ErrorIs(t, err, sheeter.ErrSchema)
		})
	}
}

func TestColumnTypeYAML(t *testing.T) {
	t.Parallel()
	out, err := yaml.Marshal(sheeter.ColumnSpec{Name: "a", Type: sheeter.TypeBoolean})
	require.NoError(t, err)
	assert.Contains(t, string(out), "type: boolean")

	var cs sheeter.ColumnSpec
	require.NoError(t, yaml.Unmarshal([]byte("name: a\ntype: numeric\n"), &cs))
	assert.Equal(t, sheeter.TypeNumber, cs.Type)
}

func TestParseColumnType(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    sheeter.ColumnType
		wantErr require.ErrorAssertionFunc
	}{
		"empty":   {input: "", want: sheeter.TypeAuto, wantErr: require.NoError},
		"auto":    {input: "auto", want: sheeter.TypeAuto, wantErr: require.NoError},
		"text":    {input: "Text", want: sheeter.TypeString, wantErr: require.NoError},
		"number":  {input: "number", want: sheeter.TypeNumber, wantErr: require.NoError},
		"bool":    {input: "bool", want: sheeter.TypeBoolean, wantErr: require.NoError},
		"unknown": {input: "date", want: sheeter.TypeAuto, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := sheeter.ParseColumnType(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchemaFor(t *testing.T) {
	t.Parallel()
	type Base struct {
		Created string `sheet:"created"`
	}
	type Order struct {
		Base
		ID     string   `sheet:"id"`
		Tags   []string `sheet:"tags,sep=;"`
		Amount float64  `sheet:"amount,type=number"`
		Note   string
		Secret string `sheet:"-"`
		hidden string
	}
	schema, err := sheeter.SchemaFor[Order]()
	require.NoError(t, err)
	assert.Equal(t, []string{"created", "id", "tags", "amount", "Note"}, schema.Names())

	tags := schema.Column(2)
	assert.True(t, tags.IsArray())
	assert.Equal(t, ";", tags.ArraySeparator())
	assert.Equal(t, sheeter.TypeNumber, schema.Column(3).Type())

	_, err = sheeter.SchemaFor[int]()
	require.ErrorIs(t, err, sheeter.ErrSchema)

}

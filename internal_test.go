package sheeter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextStack(t *testing.T) {
	t.Parallel()
	s := newContextStack()
	assert.Equal(t, 0, s.depth())
	assert.Equal(t, ctxRoot, s.parentKind())

	require.NoError(t, s.value("write"), "values at the root need no name")
	require.ErrorIs(t, s.exit(ctxObject), ErrStructural)

	s.enter(ctxObject)
	require.ErrorIs(t, s.value("write"), ErrStructural)
	require.NoError(t, s.fieldName("a"))
	require.ErrorIs(t, s.fieldName("b"), ErrStructural)
	require.NoError(t, s.value("write"))
	require.NoError(t, s.fieldName("b"))

	s.enter(ctxArray)
	assert.Equal(t, 2, s.depth())
	assert.Equal(t, ctxObject, s.parentKind())
	require.ErrorIs(t, s.fieldName("c"), ErrStructural)
	err := s.exit(ctxObject)
	require.ErrorIs(t, err, ErrStructural)
	assert.Contains(t, err.Error(), "current context not Object but Array")

	require.NoError(t, s.exit(ctxArray))
	require.NoError(t, s.exit(ctxObject))
	assert.Equal(t, 0, s.depth())
}

func TestArrayCell(t *testing.T) {
	t.Parallel()
	var a arrayCell
	col := Column{name: "tags"}
	a.start(col, "; ")
	assert.True(t, a.active)
	a.add("a")
	a.add("")
	a.add("c")
	assert.Equal(t, "a; ; c", a.finish())
	assert.False(t, a.active)

	a.start(col, ",")
	assert.Equal(t, "", a.finish(), "buffer is reset between arrays")
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		f    float64
		bits int
		want string
	}{
		"zero":       {f: 0, bits: 64, want: "0"},
		"whole":      {f: 42, bits: 64, want: "42"},
		"fraction":   {f: -0.125, bits: 64, want: "-0.125"},
		"micro":      {f: 1e-6, bits: 64, want: "0.000001"},
		"tiny":       {f: 1.5e-7, bits: 64, want: "1.5e-07"},
		"large":      {f: 2.5e21, bits: 64, want: "2.5e+21"},
		"float32":    {f: float64(float32(0.1)), bits: 32, want: "0.1"},
		"below 1e21": {f: 123456789012345680000, bits: 64, want: "123456789012345680000"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatFloat(tt.f, tt.bits))
		})
	}
}

func TestParseFieldTag(t *testing.T) {
	t.Parallel()
	three := 3
	na := "N/A"
	tests := map[string]struct {
		tag  string
		want ColumnSpec
	}{
		"empty":     {tag: "", want: ColumnSpec{Name: "Field"}},
		"name":      {tag: "id", want: ColumnSpec{Name: "id"}},
		"array":     {tag: "tags,array", want: ColumnSpec{Name: "tags", Array: true}},
		"separator": {tag: "tags,sep=|", want: ColumnSpec{Name: "tags", Array: true, Separator: "|"}},
		"options": {
			tag:  ",null=N/A,type=number,index=3",
			want: ColumnSpec{Name: "Field", NullValue: &na, Type: TypeNumber, Index: &three},
		},
		"malformed ignored": {tag: "x,type=date,index=z,bogus", want: ColumnSpec{Name: "x"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseFieldTag("Field", tt.tag))
		})
	}
}

func TestSchemaLookupHint(t *testing.T) {
	t.Parallel()
	s, err := NewSchemaBuilder().AddColumn("a").AddColumn("b").AddColumn("c").Build()
	require.NoError(t, err)

	for hint := -1; hint <= 4; hint++ {
		col, ok := s.Lookup("b", hint)
		require.True(t, ok, "hint %d", hint)
		assert.Equal(t, 1, col.pos)
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.headerRow())
}

func TestSeparatorFor(t *testing.T) {
	t.Parallel()
	s, err := NewSchemaBuilder().
		AddColumn("plain").
		AddArrayColumn("own", "|").
		AddArrayColumn("inherit", "").
		Build()
	require.NoError(t, err)

	_, err = s.separatorFor(s.columns[0])
	require.ErrorIs(t, err, ErrConfiguration)

	sep, err := s.separatorFor(s.columns[1])
	require.NoError(t, err)
	assert.Equal(t, "|", sep)

	withDefault := s.WithArraySeparator(";")
	sep, err = withDefault.separatorFor(withDefault.columns[2])
	require.NoError(t, err)
	assert.Equal(t, ";", sep)
}

func TestStreamSinkPadsRows(t *testing.T) {
	t.Parallel()
	var got [][]string
	s := newStreamSink(3, func(row []Value) error {
		out := make([]string, len(row))
		for i, v := range row {
			out[i] = v.String()
		}
		got = append(got, out)
		return nil
	}, nil)
	require.NoError(t, s.WriteCell(0, TextValue("a")))
	require.NoError(t, s.EndRow())
	require.NoError(t, s.WriteCell(4, IntegerValue(5)))
	require.NoError(t, s.EndRow())
	require.NoError(t, s.EndRow())
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.WriteCell(0, TextValue("x")), ErrTerminated)
	assert.Equal(t, [][]string{{"a", "", ""}, {"", "", "", "", "5"}}, got)
}

func TestCollectSinkAlignments(t *testing.T) {
	t.Parallel()
	cfg := sinkConfig{width: 3, aligns: []Alignment{AlignAuto, AlignCenter}}
	s := newCollectSink(nil, cfg, nil)
	require.NoError(t, s.WriteCell(0, IntegerValue(1)))
	require.NoError(t, s.WriteCell(1, NumberValue(2)))
	require.NoError(t, s.WriteCell(2, TextValue("x")))
	require.NoError(t, s.EndRow())
	require.NoError(t, s.WriteCell(0, BlankValue()))
	require.NoError(t, s.EndRow())
	assert.Equal(t, []Alignment{AlignRight, AlignCenter, AlignLeft}, s.alignments(3))
}

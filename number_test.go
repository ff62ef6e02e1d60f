package sheeter_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/sheeter"
)

func TestParseDecimal(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		str   string
		plain string
		scale int32
	}{
		"integer":           {input: "42", str: "42", plain: "42", scale: 0},
		"trailing zero":     {input: "12.50", str: "12.50", plain: "12.50", scale: 2},
		"negative fraction": {input: "-0.001", str: "-0.001", plain: "-0.001", scale: 3},
		"tiny":              {input: "1e-7", str: "1E-7", plain: "0.0000001", scale: 7},
		"positive exponent": {input: "1.5e3", str: "1.5E+3", plain: "1500", scale: -2},
		"huge integer": {
			input: "1234567890123456789012345678901234567890",
			str:   "1234567890123456789012345678901234567890",
			plain: "1234567890123456789012345678901234567890",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d, err := sheeter.ParseDecimal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.str, d.String())
			assert.Equal(t, tt.plain, d.PlainString())
			assert.Equal(t, tt.scale, d.Scale())
		})
	}
}

func TestParseDecimalErrors(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "abc", "1.2.3", "1e", "--1", "1e99999999999"} {
		_, err := sheeter.ParseDecimal(input)
		assert.Error(t, err, input)
	}
}

func TestDecimalFloat64(t *testing.T) {
	t.Parallel()
	d := sheeter.NewDecimal(big.NewInt(-125), 1)
	assert.InDelta(t, -12.5, d.Float64(), 1e-12)
	assert.Equal(t, "0", sheeter.NewDecimal(nil, 0).String())
	assert.Equal(t, "0", sheeter.Decimal{}.String())
}

func TestNumberEvent(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		kind  sheeter.EventKind
	}{
		"int":      {input: "42", kind: sheeter.KindInt},
		"negative": {input: "-7", kind: sheeter.KindInt},
		"big":      {input: "123456789012345678901234", kind: sheeter.KindBigInt},
		"fraction": {input: "1.5", kind: sheeter.KindDecimal},
		"exponent": {input: "2E10", kind: sheeter.KindDecimal},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			e, err := sheeter.NumberEvent(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, e.Kind)
		})
	}

	_, err := sheeter.NumberEvent("x")
	require.ErrorIs(t, err, sheeter.ErrStructural)
	_, err = sheeter.NumberEvent("1.x")
	require.ErrorIs(t, err, sheeter.ErrStructural)
}

func TestParseBigNumbers(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    sheeter.BigNumbers
		wantErr require.ErrorAssertionFunc
	}{
		"default": {input: "", want: sheeter.BigNumbersExact, wantErr: require.NoError},
		"exact":   {input: "exact", want: sheeter.BigNumbersExact, wantErr: require.NoError},
		"float":   {input: "FLOAT", want: sheeter.BigNumbersFloat, wantErr: require.NoError},
		"unknown": {input: "round", want: sheeter.BigNumbersExact, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := sheeter.ParseBigNumbers(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
			if err != nil {
				assert.ErrorIs(t, err, sheeter.ErrConfiguration)
			}
		})
	}
	assert.Equal(t, "float", sheeter.BigNumbersFloat.String())
}

func TestValueString(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value sheeter.Value
		want  string
	}{
		"blank":      {value: sheeter.BlankValue(), want: ""},
		"text":       {value: sheeter.TextValue("x"), want: "x"},
		"integer":    {value: sheeter.IntegerValue(-3), want: "-3"},
		"number":     {value: sheeter.NumberValue(9.5), want: "9.5"},
		"whole":      {value: sheeter.NumberValue(3), want: "3"},
		"large":      {value: sheeter.NumberValue(1e21), want: "1e+21"},
		"below 1e20": {value: sheeter.NumberValue(1e20), want: "100000000000000000000"},
		"boolean":    {value: sheeter.BooleanValue(false), want: "false"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
	assert.InDelta(t, 4.0, sheeter.IntegerValue(4).Float(), 0)
	assert.True(t, sheeter.NumberValue(1).IsNumeric())
	assert.False(t, sheeter.TextValue("1").IsNumeric())
}

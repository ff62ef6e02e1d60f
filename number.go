package sheeter

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Decimal is an exact base-10 number: unscaled × 10^-scale.
type Decimal struct {
	unscaled *big.Int
	scale    int32
}

// NewDecimal returns unscaled × 10^-scale. A nil unscaled value is zero.
func NewDecimal(unscaled *big.Int, scale int32) Decimal {
	if unscaled == nil {
		unscaled = new(big.Int)
	}
	return Decimal{unscaled: new(big.Int).Set(unscaled), scale: scale}
}

// ParseDecimal parses a decimal literal such as "-12.50", "1e-7" or
// "1234567890123456789012345678901234567890".
func ParseDecimal(s string) (Decimal, error) {
	mant, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, exp = s[:i], s[i+1:]
	}
	var scale int64
	if mant != s {
		e, err := strconv.ParseInt(exp, 10, 32)
		if err != nil {
			return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		scale = -e
	}
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		scale += int64(len(mant) - i - 1)
		mant = mant[:i] + mant[i+1:]
	}
	digits := strings.TrimLeft(mant, "+-")
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return Decimal{}, fmt.Errorf("invalid decimal %q", s)
	}
	u, ok := new(big.Int).SetString(mant, 10)
	if !ok {
		return Decimal{}, fmt.Errorf("invalid decimal %q", s)
	}
	if scale > 1<<31-1 || scale < -(1<<31) {
		return Decimal{}, fmt.Errorf("invalid decimal %q: exponent out of range", s)
	}
	return Decimal{unscaled: u, scale: int32(scale)}, nil
}

func (d Decimal) unscaledInt() *big.Int {
	if d.unscaled == nil {
		return new(big.Int)
	}
	return d.unscaled
}

// Scale returns the number of digits after the decimal point. It is
// negative when the value carries trailing zeros as an exponent.
func (d Decimal) Scale() int32 { return d.scale }

// PlainString formats d without an exponent.
func (d Decimal) PlainString() string {
	u := d.unscaledInt()
	digits := new(big.Int).Abs(u).String()
	sign := ""
	if u.Sign() < 0 {
		sign = "-"
	}
	switch {
	case d.scale == 0:
		return sign + digits
	case d.scale < 0:
		if u.Sign() == 0 {
			return "0"
		}
		return sign + digits + strings.Repeat("0", int(-d.scale))
	}
	n := int(d.scale)
	if len(digits) <= n {
		return sign + "0." + strings.Repeat("0", n-len(digits)) + digits
	}
	return sign + digits[:len(digits)-n] + "." + digits[len(digits)-n:]
}

// String formats d in scientific notation when the exponent is large or
// very negative and plainly otherwise.
func (d Decimal) String() string {
	u := d.unscaledInt()
	digits := new(big.Int).Abs(u).String()
	adjusted := -int64(d.scale) + int64(len(digits)-1)
	if d.scale >= 0 && adjusted >= -6 {
		return d.PlainString()
	}
	var sb strings.Builder
	if u.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(digits[:1])
	if len(digits) > 1 {
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	sb.WriteByte('E')
	if adjusted >= 0 {
		sb.WriteByte('+')
	}
	sb.WriteString(strconv.FormatInt(adjusted, 10))
	return sb.String()
}

// Float64 returns the nearest float64.
func (d Decimal) Float64() float64 {
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

// BigNumbers selects how integers outside the int64 range are written when
// numbers are not written as text.
type BigNumbers int

const (
	// BigNumbersExact writes the exact decimal digits as a text cell.
	BigNumbersExact BigNumbers = iota
	// BigNumbersFloat writes the nearest float64 as a numeric cell. Digits
	// past float64 precision are lost.
	BigNumbersFloat
)

func (b BigNumbers) String() string {
	if b == BigNumbersFloat {
		return "float"
	}
	return "exact"
}

// ParseBigNumbers parses "exact" or "float".
func ParseBigNumbers(s string) (BigNumbers, error) {
	switch strings.ToLower(s) {
	case "", "exact":
		return BigNumbersExact, nil
	case "float":
		return BigNumbersFloat, nil
	}
	return 0, fmt.Errorf("%w: unknown big number policy %q", ErrConfiguration, s)
}

// numberCell turns a numeric event into the value written to a column.
func (g *Generator) numberCell(e Event) Value {
	opts := &g.opts
	switch e.Kind {
	case KindInt:
		if opts.NumbersAsText {
			return TextValue(strconv.FormatInt(e.Int, 10))
		}
		return IntegerValue(e.Int)
	case KindUint:
		if e.Uint <= 1<<63-1 {
			return g.numberCell(Int(int64(e.Uint)))
		}
		return g.numberCell(BigInt(new(big.Int).SetUint64(e.Uint)))
	case KindBigInt:
		if e.Big.IsInt64() {
			return g.numberCell(Int(e.Big.Int64()))
		}
		if opts.NumbersAsText || opts.BigNumbers == BigNumbersExact {
			return TextValue(e.Big.String())
		}
		f, _ := new(big.Float).SetInt(e.Big).Float64()
		return NumberValue(f)
	case KindFloat, KindFloat32:
		if opts.NumbersAsText {
			return TextValue(g.floatText(e))
		}
		if e.Kind == KindFloat32 {
			// widen through the shortest float32 text so 0.1 stays 0.1
			f, _ := strconv.ParseFloat(strconv.FormatFloat(e.Float, 'g', -1, 32), 64)
			return NumberValue(f)
		}
		return NumberValue(e.Float)
	case KindDecimal:
		if opts.NumbersAsText {
			return TextValue(g.decimalText(e.Decimal))
		}
		return NumberValue(e.Decimal.Float64())
	}
	return BlankValue()
}

// numberText is the text form of a numeric event used inside folded arrays.
func (g *Generator) numberText(e Event) string {
	switch e.Kind {
	case KindInt:
		return strconv.FormatInt(e.Int, 10)
	case KindUint:
		return strconv.FormatUint(e.Uint, 10)
	case KindBigInt:
		return e.Big.String()
	case KindFloat, KindFloat32:
		return g.floatText(e)
	case KindDecimal:
		return g.decimalText(e.Decimal)
	}
	return ""
}

func (g *Generator) floatText(e Event) string {
	bits := 64
	if e.Kind == KindFloat32 {
		bits = 32
	}
	if g.opts.DecimalPlain {
		return strconv.FormatFloat(e.Float, 'f', -1, bits)
	}
	return formatFloat(e.Float, bits)
}

func (g *Generator) decimalText(d Decimal) string {
	if g.opts.DecimalPlain {
		return d.PlainString()
	}
	return d.String()
}

// NumberEvent converts a JSON number literal into the narrowest exact
// event: Int when it fits int64, BigInt for larger integers and Decimal
// for fractions and exponents.
func NumberEvent(lit string) (Event, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
		if b, ok := new(big.Int).SetString(lit, 10); ok {
			return BigInt(b), nil
		}
		return Event{}, fmt.Errorf("%w: invalid number %q", ErrStructural, lit)
	}
	d, err := ParseDecimal(lit)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrStructural, err)
	}
	return DecimalValue(d), nil
}

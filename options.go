package sheeter

import (
	"encoding/base64"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options control how a Generator turns events into cells.
type Options struct {
	// NumbersAsText writes every number as a text cell holding its
	// canonical decimal form.
	NumbersAsText bool `yaml:"numbers_as_text"`

	// IgnoreUnknown skips fields that do not resolve to a column, together
	// with any nested value they carry. Without it an unknown field fails.
	IgnoreUnknown bool `yaml:"ignore_unknown"`

	// DecimalPlain prints fractional numbers written as text without an
	// exponent.
	DecimalPlain bool `yaml:"decimal_plain"`

	// BigNumbers selects how integers outside the int64 range are written.
	BigNumbers BigNumbers `yaml:"big_numbers"`

	// Base64 encodes binary payloads. Default: base64.StdEncoding.
	Base64 *base64.Encoding `yaml:"-"`

	// Logger receives debug logs. Default: no-op.
	Logger *zap.Logger `yaml:"-"`
}

func (o Options) withDefaults() Options {
	if o.Base64 == nil {
		o.Base64 = base64.StdEncoding
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// MarshalYAML writes the policy by name.
func (b BigNumbers) MarshalYAML() (any, error) { return b.String(), nil }

// UnmarshalYAML reads "exact" or "float".
func (b *BigNumbers) UnmarshalYAML(value *yaml.Node) error {
	p, err := ParseBigNumbers(value.Value)
	if err != nil {
		return err
	}
	*b = p
	return nil
}

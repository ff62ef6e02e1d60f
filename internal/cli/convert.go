package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjaus/sheeter"
	"github.com/bjaus/sheeter/jsonsrc"
)

type convertFlags struct {
	config         string
	schema         string
	format         string
	output         string
	header         bool
	ignoreUnknown  bool
	numbersAsText  bool
	decimalPlain   bool
	bigNumbers     string
	arraySeparator string
	nullValue      string
	delimiter      string
	border         string
	title          string
}

func newConvertCmd(root *rootFlags) *cobra.Command {
	var flags convertFlags
	cmd := &cobra.Command{
		Use:   "convert [file...]",
		Short: "Convert JSON records into rows",
		Long: `Read JSON objects (one document, an array of objects, or a stream of
concatenated objects) and write one row per object in the chosen format.
Fields are matched to columns by the schema. Reads stdin when no file is given.`,
		Example: `  # Render a table from a schema file
  sheeter convert --schema orders.yaml orders.json

  # Write CSV, ignoring fields the schema does not know
  sheeter convert --schema orders.yaml -f csv --ignore-unknown < orders.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, root, &flags, args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "YAML config with format, schema and options")
	f.StringVarP(&flags.schema, "schema", "s", "", "YAML schema file (overrides the config schema)")
	f.StringVarP(&flags.format, "format", "f", "", "output format (default table)")
	f.StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	f.BoolVar(&flags.header, "header", false, "write a header row")
	f.BoolVar(&flags.ignoreUnknown, "ignore-unknown", false, "skip fields that match no column")
	f.BoolVar(&flags.numbersAsText, "numbers-as-text", false, "write numbers as text cells")
	f.BoolVar(&flags.decimalPlain, "decimal-plain", false, "never use an exponent for fractional numbers written as text")
	f.StringVar(&flags.bigNumbers, "big-numbers", "", "integers beyond int64: exact or float")
	f.StringVar(&flags.arraySeparator, "array-separator", "", "separator for array values of columns that declare none")
	f.StringVar(&flags.nullValue, "null-value", "", "placeholder for nulls inside arrays")
	f.StringVar(&flags.delimiter, "delimiter", "", "CSV field delimiter")
	f.StringVar(&flags.border, "border", "", "table border: rounded, none, ascii, heavy, double")
	f.StringVar(&flags.title, "title", "", "table title")
	return cmd
}

// resolveConfig merges the config file, the schema file and the flags the
// user set, in that order.
func resolveConfig(cmd *cobra.Command, flags *convertFlags) (*Config, error) {
	cfg := &Config{}
	if flags.config != "" {
		loaded, err := LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.schema != "" {
		spec, err := loadSchemaFile(flags.schema)
		if err != nil {
			return nil, err
		}
		cfg.Schema = spec
	}
	set := cmd.Flags().Changed
	if set("format") {
		cfg.Format = flags.format
	}
	if set("header") {
		cfg.Schema.Header = flags.header
	}
	if set("array-separator") {
		cfg.Schema.ArraySeparator = flags.arraySeparator
	}
	if set("null-value") {
		cfg.Schema.NullValue = flags.nullValue
	}
	if set("ignore-unknown") {
		cfg.Options.IgnoreUnknown = flags.ignoreUnknown
	}
	if set("numbers-as-text") {
		cfg.Options.NumbersAsText = flags.numbersAsText
	}
	if set("decimal-plain") {
		cfg.Options.DecimalPlain = flags.decimalPlain
	}
	if set("big-numbers") {
		p, err := sheeter.ParseBigNumbers(flags.bigNumbers)
		if err != nil {
			return nil, err
		}
		cfg.Options.BigNumbers = p
	}
	if cfg.Format == "" {
		cfg.Format = string(sheeter.Table)
	}
	return cfg, nil
}

func sinkOptions(flags *convertFlags) ([]sheeter.SinkOption, error) {
	var opts []sheeter.SinkOption
	if flags.delimiter != "" {
		r := []rune(flags.delimiter)
		if len(r) != 1 {
			return nil, fmt.Errorf("%w: delimiter must be one character, got %q", sheeter.ErrConfiguration, flags.delimiter)
		}
		opts = append(opts, sheeter.WithDelimiter(r[0]))
	}
	if flags.border != "" {
		b, ok := borders[flags.border]
		if !ok {
			return nil, fmt.Errorf("%w: unknown border %q", sheeter.ErrConfiguration, flags.border)
		}
		opts = append(opts, sheeter.WithBorder(b))
	}
	if flags.title != "" {
		opts = append(opts, sheeter.WithTitle(flags.title))
	}
	return opts, nil
}

var borders = map[string]sheeter.BorderStyle{
	"rounded": sheeter.BorderRounded,
	"none":    sheeter.BorderNone,
	"ascii":   sheeter.BorderASCII,
	"heavy":   sheeter.BorderHeavy,
	"double":  sheeter.BorderDouble,
}

func runConvert(cmd *cobra.Command, root *rootFlags, flags *convertFlags, args []string) (err error) {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	schema, err := cfg.Schema.Build()
	if err != nil {
		return err
	}
	format, err := sheeter.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	sinkOpts, err := sinkOptions(flags)
	if err != nil {
		return err
	}
	log, err := root.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	out := cmd.OutOrStdout()
	if flags.output != "" {
		f, createErr := os.Create(flags.output)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() { err = errors.Join(err, f.Close()) }()
		out = f
	}

	sink, err := sheeter.NewSink(out, format, schema, sinkOpts...)
	if err != nil {
		return err
	}
	opts := cfg.Options
	opts.Logger = log
	g := sheeter.New(sink, schema, opts)
	copyErr := copyInputs(cmd, g, args, log)
	return errors.Join(copyErr, g.Close())
}

func copyInputs(cmd *cobra.Command, g *sheeter.Generator, args []string, log *zap.Logger) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		var r io.Reader
		if name == "-" {
			r = cmd.InOrStdin()
		} else {
			f, err := os.Open(name)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()
			r = f
		}
		n, err := jsonsrc.Copy(g, r)
		log.Debug("input read", zap.String("file", name), zap.Int("events", n))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

package sheeter

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

// Alignment controls column text alignment.
type Alignment int

const (
	AlignAuto Alignment = iota // right for numeric columns, left otherwise
	AlignLeft
	AlignCenter
	AlignRight
)

// SinkOption configures a sink built by NewSink.
type SinkOption func(*sinkConfig)

type sinkConfig struct {
	schema    *Schema
	width     int
	delimiter rune
	border    BorderStyle
	title     string
	caption   string
	aligns    []Alignment
	maxWidths []int
	numbered  bool
	numHeader string
	indent    string
}

func newSinkConfig(schema *Schema, opts []SinkOption) sinkConfig {
	cfg := sinkConfig{schema: schema, delimiter: ','}
	if schema != nil {
		cfg.width = schema.Width()
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithDelimiter sets the CSV field delimiter. Default: comma.
func WithDelimiter(r rune) SinkOption { return func(c *sinkConfig) { c.delimiter = r } }

// WithBorder sets the table border style. Default: BorderRounded.
func WithBorder(b BorderStyle) SinkOption { return func(c *sinkConfig) { c.border = b } }

// WithTitle renders a title above a table or as an HTML caption.
func WithTitle(t string) SinkOption { return func(c *sinkConfig) { c.title = t } }

// WithCaption renders a line below a table.
func WithCaption(s string) SinkOption { return func(c *sinkConfig) { c.caption = s } }

// WithAlignments sets per-column alignment for Table, Markdown and HTML.
// Columns beyond the slice use AlignAuto.
func WithAlignments(a ...Alignment) SinkOption {
	return func(c *sinkConfig) { c.aligns = a }
}

// WithMaxWidths truncates table cells wider than the given widths with
// "...". A zero width means no limit for that column.
func WithMaxWidths(w ...int) SinkOption { return func(c *sinkConfig) { c.maxWidths = w } }

// WithRowNumbers prepends a row number column to tables, headed by header.
func WithRowNumbers(header string) SinkOption {
	return func(c *sinkConfig) { c.numbered, c.numHeader = true, header }
}

// WithIndent indents JSON and YAML output.
func WithIndent(indent string) SinkOption { return func(c *sinkConfig) { c.indent = indent } }

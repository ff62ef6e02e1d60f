package sheeter

import (
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColumnType is a hint for sinks that store typed columns. The generator
// never coerces values by it.
type ColumnType int

const (
	TypeAuto ColumnType = iota
	TypeString
	TypeNumber
	TypeBoolean
)

var columnTypeNames = map[ColumnType]string{
	TypeAuto:    "auto",
	TypeString:  "string",
	TypeNumber:  "number",
	TypeBoolean: "boolean",
}

func (t ColumnType) String() string { return columnTypeNames[t] }

// ParseColumnType parses a type name. The empty string is TypeAuto.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return TypeAuto, nil
	case "string", "text":
		return TypeString, nil
	case "number", "numeric":
		return TypeNumber, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	}
	return TypeAuto, fmt.Errorf("%w: unknown column type %q", ErrSchema, s)
}

func (t ColumnType) MarshalYAML() (any, error) { return t.String(), nil }

func (t *ColumnType) UnmarshalYAML(value *yaml.Node) error {
	p, err := ParseColumnType(value.Value)
	if err != nil {
		return err
	}
	*t = p
	return nil
}

// Column is one named, positioned column of a Schema.
type Column struct {
	name    string
	index   int
	pos     int
	array   bool
	sep     string
	null    string
	hasNull bool
	typ     ColumnType
}

// Name returns the column name, which is also its header text.
func (c Column) Name() string { return c.name }

// Index returns the sink column the values are written to.
func (c Column) Index() int { return c.index }

// IsArray reports whether the column was declared to hold folded arrays.
func (c Column) IsArray() bool { return c.array }

// ArraySeparator returns the column's own separator, empty when unset.
func (c Column) ArraySeparator() string { return c.sep }

// NullValue returns the column's null placeholder, if it declares one.
func (c Column) NullValue() (string, bool) { return c.null, c.hasNull }

func (c Column) Type() ColumnType { return c.typ }

// ColumnSpec declares a column. It is the YAML form of a column.
type ColumnSpec struct {
	Name      string     `yaml:"name"`
	Index     *int       `yaml:"index,omitempty"`
	Array     bool       `yaml:"array,omitempty"`
	Separator string     `yaml:"separator,omitempty"`
	NullValue *string    `yaml:"null_value,omitempty"`
	Type      ColumnType `yaml:"type,omitempty"`
}

// SchemaSpec declares a whole schema. It is the YAML form of a Schema.
type SchemaSpec struct {
	Columns        []ColumnSpec `yaml:"columns"`
	Header         bool         `yaml:"header,omitempty"`
	ArraySeparator string       `yaml:"array_separator,omitempty"`
	NullValue      string       `yaml:"null_value,omitempty"`
}

// Schema is an ordered, immutable set of columns.
type Schema struct {
	columns []Column
	byName  map[string]int
	header  bool
	sep     string
	null    string
}

// Build validates the declaration and returns the schema. Columns without an
// explicit index take the position they are declared at.
func (s SchemaSpec) Build() (*Schema, error) {
	sc := &Schema{
		columns: make([]Column, 0, len(s.Columns)),
		byName:  make(map[string]int, len(s.Columns)),
		header:  s.Header,
		sep:     s.ArraySeparator,
		null:    s.NullValue,
	}
	seen := make(map[int]string, len(s.Columns))
	for i, cs := range s.Columns {
		if cs.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrSchema, i)
		}
		idx := i
		if cs.Index != nil {
			idx = *cs.Index
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: column %q has negative index %d", ErrSchema, cs.Name, idx)
		}
		if prev, dup := seen[idx]; dup {
			return nil, fmt.Errorf("%w: columns %q and %q share index %d", ErrSchema, prev, cs.Name, idx)
		}
		seen[idx] = cs.Name
		if _, dup := sc.byName[cs.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchema, cs.Name)
		}
		col := Column{
			name:  cs.Name,
			index: idx,
			array: cs.Array || cs.Separator != "",
			sep:   cs.Separator,
			typ:   cs.Type,
		}
		if cs.NullValue != nil {
			col.null, col.hasNull = *cs.NullValue, true
		}
		sc.byName[cs.Name] = 0
		sc.columns = append(sc.columns, col)
	}
	slices.SortStableFunc(sc.columns, func(a, b Column) int { return a.index - b.index })
	for i := range sc.columns {
		sc.columns[i].pos = i
		sc.byName[sc.columns[i].name] = i
	}
	return sc, nil
}

// Spec returns the declaration the schema was built from, with every index
// made explicit.
func (s *Schema) Spec() SchemaSpec {
	out := SchemaSpec{
		Columns:        make([]ColumnSpec, len(s.columns)),
		Header:         s.header,
		ArraySeparator: s.sep,
		NullValue:      s.null,
	}
	for i, c := range s.columns {
		idx := c.index
		cs := ColumnSpec{Name: c.name, Index: &idx, Array: c.array, Separator: c.sep, Type: c.typ}
		if c.hasNull {
			null := c.null
			cs.NullValue = &null
		}
		out.Columns[i] = cs
	}
	return out
}

// LoadSchema reads a YAML schema document:
//
//	header: true
//	array_separator: ";"
//	columns:
//	  - name: id
//	  - name: tags
//	    separator: "|"
//	  - name: amount
//	    type: number
func LoadSchema(r io.Reader) (*Schema, error) {
	var spec SchemaSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: decode schema: %w", ErrSchema, err)
	}
	return spec.Build()
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Width returns the number of sink columns the schema spans: one past the
// highest column index.
func (s *Schema) Width() int {
	if len(s.columns) == 0 {
		return 0
	}
	return s.columns[len(s.columns)-1].index + 1
}

// Column returns the column at position i in column order.
func (s *Schema) Column(i int) Column { return s.columns[i] }

// Columns returns a copy of the columns in column order.
func (s *Schema) Columns() []Column { return slices.Clone(s.columns) }

// Names returns the column names in column order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.name
	}
	return names
}

// headerRow places each column name at its column index.
func (s *Schema) headerRow() []string {
	row := make([]string, s.Width())
	for _, c := range s.columns {
		row[c.index] = c.name
	}
	return row
}

// UsesHeader reports whether a header row is written before the data.
func (s *Schema) UsesHeader() bool { return s.header }

// ArraySeparator is the separator for array columns that declare none.
func (s *Schema) ArraySeparator() string { return s.sep }

// NullValue is the placeholder for nulls inside folded arrays.
func (s *Schema) NullValue() string { return s.null }

// WithHeader returns a copy of s with the header flag set to on.
func (s *Schema) WithHeader(on bool) *Schema {
	cp := *s
	cp.header = on
	return &cp
}

// WithArraySeparator returns a copy of s with a default array separator.
func (s *Schema) WithArraySeparator(sep string) *Schema {
	cp := *s
	cp.sep = sep
	return &cp
}

// Lookup finds a column by name. hint is the position the caller expects
// the column at; fields usually arrive in declaration order, so checking
// it first avoids the map lookup.
func (s *Schema) Lookup(name string, hint int) (Column, bool) {
	if hint >= 0 && hint < len(s.columns) && s.columns[hint].name == name {
		return s.columns[hint], true
	}
	i, ok := s.byName[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// ColumnDesc describes the known columns for error messages.
func (s *Schema) ColumnDesc() string {
	quoted := make([]string, len(s.columns))
	for i, c := range s.columns {
		quoted[i] = fmt.Sprintf("%q", c.name)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// separatorFor resolves the separator used to fold an array written under c.
func (s *Schema) separatorFor(c Column) (string, error) {
	if c.array && c.sep != "" {
		return c.sep, nil
	}
	if s.sep == "" {
		return "", fmt.Errorf("%w: array values need an explicit separator (column %q)", ErrConfiguration, c.name)
	}
	return s.sep, nil
}

// nullFor returns the placeholder written for a null element of c.
func (s *Schema) nullFor(c Column) string {
	if c.hasNull {
		return c.null
	}
	return s.null
}

// SchemaBuilder declares a schema column by column.
type SchemaBuilder struct {
	spec SchemaSpec
}

// NewSchemaBuilder returns an empty builder.
func NewSchemaBuilder() *SchemaBuilder { return &SchemaBuilder{} }

// AddColumn appends a scalar column.
func (b *SchemaBuilder) AddColumn(name string) *SchemaBuilder {
	return b.AddColumnSpec(ColumnSpec{Name: name})
}

// AddArrayColumn appends a column whose array values fold into one cell
// joined by sep. An empty sep falls back to the schema separator.
func (b *SchemaBuilder) AddArrayColumn(name, sep string) *SchemaBuilder {
	return b.AddColumnSpec(ColumnSpec{Name: name, Array: true, Separator: sep})
}

func (b *SchemaBuilder) AddColumnSpec(cs ColumnSpec) *SchemaBuilder {
	b.spec.Columns = append(b.spec.Columns, cs)
	return b
}

func (b *SchemaBuilder) SetUseHeader(on bool) *SchemaBuilder {
	b.spec.Header = on
	return b
}

func (b *SchemaBuilder) SetArraySeparator(sep string) *SchemaBuilder {
	b.spec.ArraySeparator = sep
	return b
}

func (b *SchemaBuilder) SetNullValue(v string) *SchemaBuilder {
	b.spec.NullValue = v
	return b
}

// Build returns the schema.
func (b *SchemaBuilder) Build() (*Schema, error) { return b.spec.Build() }

// SchemaFor derives a schema from the exported fields of struct type T,
// in declaration order. Fields are named by the "sheet" tag:
//
//	type Order struct {
//		ID     string   `sheet:"id"`
//		Tags   []string `sheet:"tags,sep=;"`
//		Amount float64  `sheet:"amount,type=number"`
//		Secret string   `sheet:"-"`
//	}
func SchemaFor[T any]() (*Schema, error) {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: cannot derive columns from %s", ErrSchema, t)
	}
	var spec SchemaSpec
	for _, f := range structFields(t) {
		spec.Columns = append(spec.Columns, f.spec)
	}
	return spec.Build()
}

package tableread

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// IndexCol selects the identifier column: by position, by name, or none.
// The zero value means no identifier column.
type IndexCol struct {
	Position int
	Name     string
	byName   bool
	set      bool
}

// IndexAt selects the identifier column by zero-based position.
func IndexAt(pos int) IndexCol { return IndexCol{Position: pos, set: true} }

// IndexNamed selects the identifier column by header name.
func IndexNamed(name string) IndexCol { return IndexCol{Name: name, byName: true, set: true} }

// IsSet reports whether an identifier column was requested.
func (c IndexCol) IsSet() bool { return c.set }

// ByName reports whether the column is selected by header name.
func (c IndexCol) ByName() bool { return c.byName }

func (c IndexCol) String() string {
	switch {
	case !c.set:
		return "none"
	case c.byName:
		return fmt.Sprintf("%q", c.Name)
	default:
		return fmt.Sprintf("%d", c.Position)
	}
}

// UnmarshalYAML accepts an integer position, a column name, or false/null.
func (c *IndexCol) UnmarshalYAML(node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		*c = IndexCol{}
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("%w: index_col=true is not supported", ErrInvalidOptions)
		}
		*c = IndexCol{}
	case "!!int":
		var pos int
		if err := node.Decode(&pos); err != nil {
			return err
		}
		if pos < 0 {
			return fmt.Errorf("%w: index_col %d is negative", ErrInvalidOptions, pos)
		}
		*c = IndexAt(pos)
	case "!!str":
		*c = IndexNamed(node.Value)
	default:
		return fmt.Errorf("%w: index_col must be an integer, a name or false (line %d)", ErrInvalidOptions, node.Line)
	}
	return nil
}

// ColumnRef names a column by zero-based position or by header name.
type ColumnRef struct {
	Position int
	Name     string
	byName   bool
}

// ColumnAt refers to a column by position.
func ColumnAt(pos int) ColumnRef { return ColumnRef{Position: pos} }

// ColumnNamed refers to a column by header name.
func ColumnNamed(name string) ColumnRef { return ColumnRef{Name: name, byName: true} }

// Matches reports whether the column at pos with the given header is the one referred to.
func (r ColumnRef) Matches(pos int, name string) bool {
	if r.byName {
		return r.Name == name
	}
	return r.Position == pos
}

// UnmarshalYAML accepts an integer position or a column name.
func (r *ColumnRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!int":
		var pos int
		if err := node.Decode(&pos); err != nil {
			return err
		}
		if pos < 0 {
			return fmt.Errorf("%w: column position %d is negative", ErrInvalidOptions, pos)
		}
		*r = ColumnAt(pos)
	case "!!str":
		*r = ColumnNamed(node.Value)
	default:
		return fmt.Errorf("%w: column must be an integer or a name (line %d)", ErrInvalidOptions, node.Line)
	}
	return nil
}

// Options is the load configuration handed to every loader. Key names follow
// the reader keywords submission kwargs files have always used.
type Options struct {
	IndexCol         IndexCol    `yaml:"index_col"`
	SkipInitialSpace bool        `yaml:"skipinitialspace"`
	Sep              string      `yaml:"sep"`
	NAValues         []string    `yaml:"na_values"`
	KeepDefaultNA    *bool       `yaml:"keep_default_na"`
	ParseDates       []ColumnRef `yaml:"parse_dates"`
	Comment          string      `yaml:"comment"`

	// explicit marks options decoded from a non-empty configuration, which
	// never fall back to the defaults even when every value is zero.
	explicit bool
}

// DefaultOptions is used when no load configuration is supplied: the first
// column identifies rows and leading blanks in fields are dropped.
func DefaultOptions() Options {
	return Options{IndexCol: IndexAt(0), SkipInitialSpace: true}
}

// IsZero reports whether no load option was supplied, in which case
// DefaultOptions applies.
func (o Options) IsZero() bool {
	return !o.explicit &&
		!o.IndexCol.IsSet() &&
		!o.SkipInitialSpace &&
		o.Sep == "" &&
		len(o.NAValues) == 0 &&
		o.KeepDefaultNA == nil &&
		len(o.ParseDates) == 0 &&
		o.Comment == ""
}

// ParseOptions decodes a JSON or YAML object into Options. An empty document
// or empty object yields DefaultOptions; otherwise the given keys replace the
// defaults wholesale. Unknown keys are rejected.
func ParseOptions(data []byte) (Options, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if len(raw) == 0 {
		return DefaultOptions(), nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var o Options
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrInvalidOptions) {
			return Options{}, err
		}
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	o.explicit = true
	return o, nil
}

// Validate checks option values the readers cannot honour.
func (o Options) Validate() error {
	if o.Sep != "" && utf8.RuneCountInString(o.Sep) != 1 {
		return fmt.Errorf("%w: sep %q must be a single character", ErrInvalidOptions, o.Sep)
	}
	if o.Comment != "" && utf8.RuneCountInString(o.Comment) != 1 {
		return fmt.Errorf("%w: comment %q must be a single character", ErrInvalidOptions, o.Comment)
	}
	if o.Sep != "" && o.Sep == o.Comment {
		return fmt.Errorf("%w: sep and comment must differ", ErrInvalidOptions)
	}
	return nil
}

func (o Options) separator() rune {
	if o.Sep == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(o.Sep)
	return r
}

func (o Options) commentRune() rune {
	if o.Comment == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(o.Comment)
	return r
}

func (o Options) keepDefaultNA() bool {
	return o.KeepDefaultNA == nil || *o.KeepDefaultNA
}

// naSet returns the strings treated as missing values.
func (o Options) naSet() map[string]bool {
	set := make(map[string]bool, len(defaultNAValues)+len(o.NAValues))
	if o.keepDefaultNA() {
		for _, s := range defaultNAValues {
			set[s] = true
		}
	}
	for _, s := range o.NAValues {
		set[s] = true
	}
	return set
}

func (o Options) parsesDates(pos int, name string) bool {
	for _, ref := range o.ParseDates {
		if ref.Matches(pos, name) {
			return true
		}
	}
	return false
}

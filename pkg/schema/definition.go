// Package schema describes records declaratively. A Definition lists typed
// fields with their constraints; Build turns it into a record of values.
// Definitions are YAML documents, and JSON input is accepted as YAML.
package schema

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalue/pkg/value"
)

// Definition is a named, ordered list of field definitions.
type Definition struct {
	Name        string     `yaml:"name,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Fields      []FieldDef `yaml:"fields"`
}

// FieldDef declares one field. Constraint fields that do not apply to Kind
// are ignored.
type FieldDef struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Label       string `yaml:"label,omitempty"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Key         bool   `yaml:"key,omitempty"`
	ReadOnly    bool   `yaml:"readOnly,omitempty"`
	// Default is applied through the strict parser when the record is built.
	Default string `yaml:"default,omitempty"`
	// Secret hides the input when prompting.
	Secret bool `yaml:"secret,omitempty"`
	// Widget overrides the prompt widget chosen for the field.
	Widget  string   `yaml:"widget,omitempty"`
	Choices []string `yaml:"choices,omitempty"`

	Min *int64 `yaml:"min,omitempty"`
	Max *int64 `yaml:"max,omitempty"`

	IntegerDigits  *int  `yaml:"integerDigits,omitempty"`
	FractionDigits *int  `yaml:"fractionDigits,omitempty"`
	Negative       *bool `yaml:"negative,omitempty"`

	MaxLength *int   `yaml:"maxLength,omitempty"`
	Casing    string `yaml:"casing,omitempty"`
	Allowed   string `yaml:"allowed,omitempty"`
	// StripMarkup removes HTML tags from answers before they are parsed.
	StripMarkup bool `yaml:"stripMarkup,omitempty"`

	Order             string `yaml:"order,omitempty"`
	DateSeparator     string `yaml:"dateSeparator,omitempty"`
	DateTimeSeparator string `yaml:"dateTimeSeparator,omitempty"`
	Seconds           *bool  `yaml:"seconds,omitempty"`
	TimeOptional      *bool  `yaml:"timeOptional,omitempty"`
}

// Parse decodes a YAML or JSON definition and validates it.
func Parse(data []byte) (Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Definition{}, ErrEmptyDocument
	}
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("schema: decode: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Load reads and parses the definition behind src.
func Load(src Source) (Definition, error) {
	doc, err := ReadDocument(src)
	if err != nil {
		return Definition{}, err
	}
	return doc.Definition()
}

// Marshal renders def as YAML.
func Marshal(def Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return nil, fmt.Errorf("schema: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("schema: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks every field and returns all problems combined.
func (d Definition) Validate() error {
	if len(d.Fields) == 0 {
		return ErrNoFields
	}
	var errs error
	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if strings.TrimSpace(f.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: field %d", ErrFieldName, i))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name))
		}
		seen[f.Name] = struct{}{}
		if _, err := f.Options(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Field looks up a field definition by name.
func (d Definition) Field(name string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// ValueKind resolves the declared kind.
func (f FieldDef) ValueKind() (value.Kind, error) {
	kind, ok := value.ParseKind(strings.ToLower(strings.TrimSpace(f.Kind)))
	if !ok {
		return "", fmt.Errorf("%w: %s: %q", ErrUnknownKind, f.Name, f.Kind)
	}
	return kind, nil
}

// Options translates the declared constraints into value options.
func (f FieldDef) Options() ([]value.Option, error) {
	kind, err := f.ValueKind()
	if err != nil {
		return nil, err
	}
	opts := []value.Option{
		value.WithRequired(f.Required),
		value.WithKey(f.Key),
		value.WithReadOnly(f.ReadOnly),
	}
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidField, f.Name, fmt.Sprintf(format, args...))
	}

	if f.StripMarkup && kind != value.KindText {
		return nil, invalid("stripMarkup applies to text fields only")
	}

	switch kind {
	case value.KindInteger, value.KindLong:
		if f.Min != nil || f.Max != nil {
			lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
			if kind == value.KindInteger {
				lo, hi = math.MinInt32, math.MaxInt32
			}
			if f.Min != nil {
				lo = *f.Min
			}
			if f.Max != nil {
				hi = *f.Max
			}
			if lo > hi {
				return nil, invalid("min %d is greater than max %d", lo, hi)
			}
			opts = append(opts, value.WithRange(lo, hi))
		}
	case value.KindDecimal:
		if f.IntegerDigits != nil || f.FractionDigits != nil {
			integer, fraction := -1, -1
			if f.IntegerDigits != nil {
				integer = *f.IntegerDigits
			}
			if f.FractionDigits != nil {
				fraction = *f.FractionDigits
			}
			opts = append(opts, value.WithDigits(integer, fraction))
		}
		if f.Negative != nil {
			opts = append(opts, value.WithNegative(*f.Negative))
		}
	case value.KindText:
		if f.MaxLength != nil {
			opts = append(opts, value.WithMaxLength(*f.MaxLength))
		}
		if f.Casing != "" {
			casing, err := value.ParseCasing(f.Casing)
			if err != nil {
				return nil, invalid("%v", err)
			}
			opts = append(opts, value.WithCasing(casing))
		}
		if f.Allowed != "" {
			opts = append(opts, value.WithAllowed(f.Allowed))
		}
		for _, choice := range f.Choices {
			if f.MaxLength != nil && *f.MaxLength >= 0 && utf8.RuneCountInString(choice) > *f.MaxLength {
				return nil, invalid("choice %q is longer than %d", choice, *f.MaxLength)
			}
		}
	case value.KindDate, value.KindDateTime:
		if f.Order != "" {
			order := value.DateOrder(strings.ToLower(f.Order))
			if !order.Valid() {
				return nil, invalid("unknown date order %q", f.Order)
			}
			opts = append(opts, value.WithDateOrder(order))
		}
		if f.DateSeparator != "" {
			r, err := singleRune(f.DateSeparator)
			if err != nil {
				return nil, invalid("dateSeparator: %v", err)
			}
			opts = append(opts, value.WithDateSeparator(r))
		}
		if kind == value.KindDateTime {
			if f.DateTimeSeparator != "" {
				r, err := singleRune(f.DateTimeSeparator)
				if err != nil {
					return nil, invalid("dateTimeSeparator: %v", err)
				}
				opts = append(opts, value.WithDateTimeSeparator(r))
			}
			if f.TimeOptional != nil {
				opts = append(opts, value.WithTimeOptional(*f.TimeOptional))
			}
		}
	}
	if (kind == value.KindClock || kind == value.KindDateTime) && f.Seconds != nil {
		opts = append(opts, value.WithSeconds(*f.Seconds))
	}
	return opts, nil
}

func singleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	return r, nil
}

func baseName(location string) string {
	base := filepath.Base(location)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

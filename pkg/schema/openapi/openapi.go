// Package openapi derives record definitions from OpenAPI 3 documents. Object
// schemas, taken from components or operation request bodies, become one
// field per scalar property.
package openapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalue/pkg/schema"
)

// KeyExtension marks a property as part of the record identity.
const KeyExtension = "x-formvalue-key"

// Options configures document loading.
type Options struct {
	// Validate runs the kin-openapi document validation after loading.
	Validate bool
	// Logger receives a warning for every property that has no value kind.
	Logger *slog.Logger
}

// Converter turns schemas of one loaded document into definitions.
type Converter struct {
	doc    *openapi3.T
	logger *slog.Logger
}

// Load parses raw as an OpenAPI 3 document in JSON or YAML.
func Load(ctx context.Context, raw []byte, opts Options) (*Converter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opts.Validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{doc: doc, logger: logger}, nil
}

// Components lists the component schema names in sorted order.
func (c *Converter) Components() []string {
	if c.doc.Components == nil {
		return nil
	}
	names := make([]string, 0, len(c.doc.Components.Schemas))
	for name := range c.doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Component converts the named component schema.
func (c *Converter) Component(name string) (schema.Definition, error) {
	if c.doc.Components == nil {
		return schema.Definition{}, fmt.Errorf("%w: component %s", ErrSchemaNotFound, name)
	}
	ref, ok := c.doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return schema.Definition{}, fmt.Errorf("%w: component %s", ErrSchemaNotFound, name)
	}
	return c.convert(name, ref.Value)
}

// Operation converts the JSON request body of the operation with the given
// operationId.
func (c *Converter) Operation(operationID string) (schema.Definition, error) {
	if c.doc.Paths != nil {
		for _, item := range c.doc.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op == nil || op.OperationID != operationID {
					continue
				}
				if s := requestSchema(op.RequestBody); s != nil {
					return c.convert(operationID, s)
				}
			}
		}
	}
	return schema.Definition{}, fmt.Errorf("%w: operation %s", ErrSchemaNotFound, operationID)
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := body.Value.Content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (c *Converter) convert(name string, s *openapi3.Schema) (schema.Definition, error) {
	if !s.Type.Includes(openapi3.TypeObject) && len(s.Properties) == 0 {
		return schema.Definition{}, fmt.Errorf("%w: %s", ErrNotObject, name)
	}
	def := schema.Definition{Name: name, Description: s.Description}

	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	for _, prop := range propertyOrder(s) {
		ref := s.Properties[prop]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := convertProperty(prop, ref.Value)
		if !ok {
			c.logger.Warn("property skipped", slog.String("schema", name), slog.String("property", prop), slog.String("type", typeName(ref.Value.Type)))
			continue
		}
		field.Required = required[prop]
		def.Fields = append(def.Fields, field)
	}
	if len(def.Fields) == 0 {
		return schema.Definition{}, fmt.Errorf("%w: %s", schema.ErrNoFields, name)
	}
	if err := def.Validate(); err != nil {
		return schema.Definition{}, err
	}
	return def, nil
}

// propertyOrder lists required properties in declaration order, then the
// rest sorted by name.
func propertyOrder(s *openapi3.Schema) []string {
	seen := make(map[string]bool, len(s.Properties))
	var names []string
	for _, r := range s.Required {
		if _, ok := s.Properties[r]; ok && !seen[r] {
			names = append(names, r)
			seen[r] = true
		}
	}
	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func convertProperty(name string, s *openapi3.Schema) (schema.FieldDef, bool) {
	field := schema.FieldDef{
		Name:        name,
		Label:       s.Title,
		Description: s.Description,
		ReadOnly:    s.ReadOnly,
		Choices:     enumStrings(s.Enum),
	}
	if key, ok := s.Extensions[KeyExtension].(bool); ok {
		field.Key = key
	}
	if s.Default != nil {
		field.Default = scalarString(s.Default)
	}

	switch {
	case s.Type.Includes(openapi3.TypeBoolean):
		field.Kind = "boolean"
	case s.Type.Includes(openapi3.TypeInteger):
		field.Kind = "integer"
		if s.Format == "int64" {
			field.Kind = "long"
		}
		field.Min, field.Max = integerBounds(s)
	case s.Type.Includes(openapi3.TypeNumber):
		field.Kind = "decimal"
		if s.Min != nil && *s.Min >= 0 {
			negative := false
			field.Negative = &negative
		}
		if s.MultipleOf != nil {
			if digits, ok := fractionDigits(*s.MultipleOf); ok {
				field.FractionDigits = &digits
			}
		}
	case s.Type.Includes(openapi3.TypeString):
		switch s.Format {
		case "date":
			field.Kind = "date"
			field.Order, field.DateSeparator = "ymd", "-"
		case "date-time":
			field.Kind = "datetime"
			field.Order, field.DateSeparator, field.DateTimeSeparator = "ymd", "-", "T"
		case "time":
			field.Kind = "time"
		default:
			field.Kind = "text"
			field.Secret = s.Format == "password"
			if s.MaxLength != nil && *s.MaxLength <= math.MaxInt32 {
				n := int(*s.MaxLength)
				field.MaxLength = &n
			}
		}
	default:
		return schema.FieldDef{}, false
	}
	return field, true
}

func integerBounds(s *openapi3.Schema) (*int64, *int64) {
	var lo, hi *int64
	if s.Min != nil {
		n := int64(math.Ceil(*s.Min))
		if s.ExclusiveMin && float64(n) == *s.Min {
			n++
		}
		lo = &n
	}
	if s.Max != nil {
		n := int64(math.Floor(*s.Max))
		if s.ExclusiveMax && float64(n) == *s.Max {
			n--
		}
		hi = &n
	}
	return lo, hi
}

// fractionDigits counts the decimals of a multipleOf step such as 0.01.
func fractionDigits(step float64) (int, bool) {
	if step <= 0 {
		return 0, false
	}
	text := strconv.FormatFloat(step, 'f', -1, 64)
	_, frac, ok := strings.Cut(text, ".")
	if !ok {
		return 0, true
	}
	return len(frac), true
}

func enumStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, scalarString(v))
	}
	return out
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func typeName(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	return strings.Join(types.Slice(), ",")
}

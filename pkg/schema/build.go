package schema

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/goliatone/go-formvalue/internal/labels"
	"github.com/goliatone/go-formvalue/pkg/record"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// Build constructs a record holding one empty value per field, in definition
// order. Values share the factory's locale; a nil factory uses the default
// locale. Field defaults are applied with the strict parser, and every
// failure is reported in one combined error.
func Build(def Definition, factory *value.Factory, opts ...record.Option) (*record.Record, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		var err error
		if factory, err = value.NewFactory(value.DefaultLocale()); err != nil {
			return nil, err
		}
	}

	rec := record.New(append([]record.Option{record.WithName(def.Name)}, opts...)...)
	var errs error
	for _, f := range def.Fields {
		v, err := newValue(f, factory)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		label := f.Label
		if label == "" {
			label = labels.Default(f.Name)
		}
		if err := rec.Add(f.Name, v, record.WithLabel(label), record.WithDescription(f.Description)); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}
	return rec, nil
}

func newValue(f FieldDef, factory *value.Factory) (value.Value, error) {
	kind, err := f.ValueKind()
	if err != nil {
		return nil, err
	}
	opts, err := f.Options()
	if err != nil {
		return nil, err
	}
	v, err := factory.New(kind, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidField, f.Name, err)
	}
	if f.Default != "" {
		if err := v.SetValue(f.Default); err != nil {
			return nil, fmt.Errorf("%w: %s: default: %w", ErrInvalidField, f.Name, err)
		}
	}
	return v, nil
}

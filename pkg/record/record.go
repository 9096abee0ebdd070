// Package record aggregates named values into a record whose completeness is
// derived from the validity of its fields.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalue/pkg/notify"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// Property names published by a Record.
const (
	PropDataComplete = "dataComplete"
	PropFields       = "fields"
)

// Field is one named member of a record.
type Field struct {
	Name        string
	Label       string
	Description string
	Value       value.Value
}

type entry struct {
	Field
	handle int
}

// Option configures a Record.
type Option func(*Record)

// WithLogger routes completeness transitions to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Record) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithName sets the record name used in logs and marshaled output.
func WithName(name string) Option {
	return func(r *Record) {
		r.name = name
	}
}

// FieldOption describes a field being added.
type FieldOption func(*Field)

// WithLabel sets the human label of a field.
func WithLabel(label string) FieldOption {
	return func(f *Field) {
		f.Label = label
	}
}

// WithDescription sets the help text of a field.
func WithDescription(description string) FieldOption {
	return func(f *Field) {
		f.Description = description
	}
}

// Record owns an ordered list of named values. DataComplete is true when
// every field is valid and is recomputed whenever a field's validity
// changes. A Record is confined to one goroutine, like its values.
type Record struct {
	name     string
	entries  []*entry
	complete bool
	events   notify.Publisher
	logger   *slog.Logger
}

// New returns an empty record. An empty record is complete.
func New(opts ...Option) *Record {
	r := &Record{
		complete: true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name returns the record name.
func (r *Record) Name() string { return r.name }

// Add appends a field. The record takes ownership of v.
func (r *Record) Add(name string, v value.Value, opts ...FieldOption) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if v == nil {
		return fmt.Errorf("%w: %s", ErrNilValue, name)
	}
	if r.index(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateField, name)
	}

	e := &entry{Field: Field{Name: name, Value: v}}
	for _, opt := range opts {
		if opt != nil {
			opt(&e.Field)
		}
	}
	e.handle = v.Subscribe(value.PropValid, func(notify.Change) {
		r.recompute(name)
	})
	r.entries = append(r.entries, e)
	r.events.Publish(notify.Change{Property: PropFields, New: r.Names()})
	r.recompute(name)
	return nil
}

// Remove detaches and drops the named field. It reports whether the field
// existed.
func (r *Record) Remove(name string) bool {
	i := r.index(name)
	if i < 0 {
		return false
	}
	e := r.entries[i]
	e.Value.Unsubscribe(e.handle)
	r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
	r.events.Publish(notify.Change{Property: PropFields, New: r.Names()})
	r.recompute(name)
	return true
}

func (r *Record) index(name string) int {
	for i, e := range r.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.entries) }

// Names lists the field names in order.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Name)
	}
	return names
}

// Field looks up a value by name.
func (r *Record) Field(name string) (value.Value, bool) {
	i := r.index(name)
	if i < 0 {
		return nil, false
	}
	return r.entries[i].Value, true
}

// FieldAt returns the field at index i.
func (r *Record) FieldAt(i int) (Field, bool) {
	if i < 0 || i >= len(r.entries) {
		return Field{}, false
	}
	return r.entries[i].Field, true
}

// Fields returns the fields in order.
func (r *Record) Fields() []Field {
	out := make([]Field, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Field)
	}
	return out
}

// Clear clears every field.
func (r *Record) Clear() {
	r.clearWhere(func(value.Value) bool { return true })
}

// ClearKey clears the fields that are part of the record identity.
func (r *Record) ClearKey() {
	r.clearWhere(func(v value.Value) bool { return v.Key() })
}

// ClearNonKey clears every field outside the record identity.
func (r *Record) ClearNonKey() {
	r.clearWhere(func(v value.Value) bool { return !v.Key() })
}

func (r *Record) clearWhere(match func(value.Value) bool) {
	for _, e := range r.entries {
		if match(e.Value) {
			e.Value.Clear()
		}
	}
}

// DataComplete reports whether every field is valid.
func (r *Record) DataComplete() bool { return r.complete }

// Invalid lists the names of the fields that are not valid.
func (r *Record) Invalid() []string {
	var names []string
	for _, e := range r.entries {
		if !e.Value.Valid() {
			names = append(names, e.Name)
		}
	}
	return names
}

func (r *Record) recompute(cause string) {
	complete := true
	for _, e := range r.entries {
		if !e.Value.Valid() {
			complete = false
			break
		}
	}
	if complete == r.complete {
		return
	}
	old := r.complete
	r.complete = complete
	r.logger.Debug("record completeness changed",
		slog.String("record", r.name),
		slog.String("field", cause),
		slog.Bool("complete", complete),
	)
	r.events.Publish(notify.Change{Property: PropDataComplete, Old: old, New: complete})
}

// Subscribe registers handler for a record property ("" for all).
func (r *Record) Subscribe(property string, handler notify.Handler) int {
	return r.events.Attach(property, handler)
}

func (r *Record) Unsubscribe(handle int) {
	r.events.Detach(handle)
}

// Values returns the text of every field keyed by name.
func (r *Record) Values() map[string]string {
	out := make(map[string]string, len(r.entries))
	for _, e := range r.entries {
		out[e.Name] = e.Value.String()
	}
	return out
}

// SetValues applies values through each field's strict setter. Every field
// is attempted; failures, including unknown names, are combined into one
// error.
func (r *Record) SetValues(values map[string]string) error {
	var errs error
	for _, e := range r.entries {
		text, ok := values[e.Name]
		if !ok {
			continue
		}
		if err := e.Value.SetValue(text); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record: field %q: %w", e.Name, err))
		}
	}

	var unknown []string
	for name := range values {
		if r.index(name) < 0 {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrUnknownField, name))
	}
	return errs
}

// KeyString joins the sort keys of the key fields, in order. Records with
// equal identity share a key string.
func (r *Record) KeyString() string {
	var parts []string
	for _, e := range r.entries {
		if e.Value.Key() {
			parts = append(parts, e.Value.SortKey())
		}
	}
	return strings.Join(parts, "|")
}

// Copy returns a record with copies of every field. Subscribers are not
// carried over.
func (r *Record) Copy() *Record {
	c := New(WithName(r.name), WithLogger(r.logger))
	for _, e := range r.entries {
		_ = c.Add(e.Name, e.Value.Copy(), WithLabel(e.Label), WithDescription(e.Description))
	}
	return c
}

// MarshalJSON renders the record as an object of field texts in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value.String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the record as a mapping of field texts in field order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range r.entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value.String()},
		)
	}
	return node, nil
}

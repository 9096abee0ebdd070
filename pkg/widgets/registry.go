// Package widgets picks the prompt widget used to fill a field.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formvalue/pkg/schema"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput    = "input"
	WidgetToggle   = "toggle"
	WidgetSelect   = "select"
	WidgetPassword = "password"
	WidgetTextArea = "textarea"
)

// TextAreaLength is the text length bound above which text fields get a
// multi-line editor. Unbounded text stays on a single line.
const TextAreaLength = 120

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field schema.FieldDef) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
// Fields nothing matches use WidgetInput.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit Widget on the
// field is honoured before matchers run.
func (r *Registry) Resolve(field schema.FieldDef) string {
	if explicit := strings.TrimSpace(field.Widget); explicit != "" {
		return explicit
	}
	if r == nil {
		return WidgetInput
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetInput
}

// Decorate stores the resolved widget on every field of def that has none.
func (r *Registry) Decorate(def *schema.Definition) {
	if def == nil {
		return
	}
	for i := range def.Fields {
		if def.Fields[i].Widget == "" {
			def.Fields[i].Widget = r.Resolve(def.Fields[i])
		}
	}
}

func kindOf(field schema.FieldDef) value.Kind {
	kind, err := field.ValueKind()
	if err != nil {
		return ""
	}
	return kind
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(field schema.FieldDef) bool {
		return kindOf(field) == value.KindBoolean
	})

	r.Register(WidgetSelect, 80, func(field schema.FieldDef) bool {
		return len(field.Choices) > 0
	})

	r.Register(WidgetPassword, 70, func(field schema.FieldDef) bool {
		return field.Secret && kindOf(field) == value.KindText
	})

	r.Register(WidgetTextArea, 60, func(field schema.FieldDef) bool {
		return kindOf(field) == value.KindText && field.MaxLength != nil && *field.MaxLength > TextAreaLength
	})
}

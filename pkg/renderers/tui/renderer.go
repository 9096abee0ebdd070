// Package tui fills records from a terminal. Every answer goes through the
// strict parser of the field's value, and rejected answers are reported and
// asked again.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalue/pkg/record"
	"github.com/goliatone/go-formvalue/pkg/schema"
	"github.com/goliatone/go-formvalue/pkg/value"
	"github.com/goliatone/go-formvalue/pkg/widgets"
)

// noneOption lets optional select fields be left empty.
const noneOption = "(none)"

// Renderer drives prompts for the fields of a record.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	registry     *widgets.Registry
	theme        Theme
	logger       *slog.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		registry:     widgets.NewRegistry(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if _, err := ParseOutputFormat(string(r.outputFormat)); err != nil {
		return nil, fmt.Errorf("%w: %q", err, r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render fills rec and serializes the result.
func (r *Renderer) Render(ctx context.Context, def schema.Definition, rec *record.Record) ([]byte, error) {
	if err := r.Fill(ctx, def, rec); err != nil {
		return nil, err
	}
	return r.Serialize(rec)
}

// Fill prompts for every writable field of rec in order. def supplies
// choices, secrets and widget hints; fields it does not describe get a
// plain input.
func (r *Renderer) Fill(ctx context.Context, def schema.Definition, rec *record.Record) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if rec == nil {
		return ErrNilRecord
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}
	for _, field := range rec.Fields() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if field.Value.ReadOnly() {
			r.logger.Debug("skipping read-only field", slog.String("field", field.Name))
			continue
		}
		fd, ok := def.Field(field.Name)
		if !ok {
			fd = schema.FieldDef{Name: field.Name, Kind: string(field.Value.Kind())}
		}
		if err := r.promptField(ctx, field, fd); err != nil {
			return err
		}
	}
	if !rec.DataComplete() {
		return fmt.Errorf("tui: record incomplete: %s", strings.Join(rec.Invalid(), ", "))
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field record.Field, fd schema.FieldDef) error {
	widget := r.registry.Resolve(fd)
	for {
		answer, err := r.ask(ctx, widget, field, fd)
		if err != nil {
			return err
		}
		answer = fd.Clean(answer)
		if err := field.Value.SetValue(answer); err != nil {
			r.reject(ctx, field, answer, err)
			continue
		}
		if !field.Value.Valid() {
			r.reject(ctx, field, answer, errors.New("a value is required"))
			continue
		}
		return nil
	}
}

func (r *Renderer) reject(ctx context.Context, field record.Field, answer string, err error) {
	r.logger.Debug("answer rejected",
		slog.String("field", field.Name),
		slog.String("answer", answer),
		slog.String("error", err.Error()),
	)
	_ = r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %v", r.theme.ErrorPrefix, displayLabel(field), err))
}

// ask returns the answer as text for the strict parser.
func (r *Renderer) ask(ctx context.Context, widget string, field record.Field, fd schema.FieldDef) (string, error) {
	label := displayLabel(field)
	help := displayHelp(field)
	v := field.Value

	switch widget {
	case widgets.WidgetToggle:
		checked, _ := strconv.ParseBool(v.String())
		b, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: checked, Help: help})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil

	case widgets.WidgetSelect:
		options := append([]string(nil), fd.Choices...)
		if !v.Required() {
			options = append(options, noneOption)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, v.String()),
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) || options[idx] == noneOption {
			return "", nil
		}
		return options[idx], nil

	case widgets.WidgetTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: v.String(), Help: help})

	case widgets.WidgetPassword:
		return r.driver.Password(ctx, InputConfig{Message: label, Help: help, Validator: validator(v, fd)})

	default:
		return r.driver.Input(ctx, InputConfig{Message: label, Default: v.String(), Help: help, Validator: validator(v, fd)})
	}
}

// validator checks an answer against a copy of v so the prompt can reject
// it before anything is stored.
func validator(v value.Value, fd schema.FieldDef) func(string) error {
	return func(answer string) error {
		trial := v.Copy()
		if err := trial.SetValue(fd.Clean(answer)); err != nil {
			return err
		}
		if !trial.Valid() {
			return errors.New("a value is required")
		}
		return nil
	}
}

// Serialize renders rec in the configured output format.
func (r *Renderer) Serialize(rec *record.Record) ([]byte, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	switch r.outputFormat {
	case OutputFormatYAML:
		return yaml.Marshal(rec)
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, f := range rec.Fields() {
			form.Set(f.Name, f.Value.String())
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(rec)), nil
	default:
		return json.Marshal(rec)
	}
}

func prettyPrint(rec *record.Record) string {
	fields := rec.Fields()
	width := 0
	for _, f := range fields {
		if n := utf8.RuneCountInString(displayLabel(f)); n > width {
			width = n
		}
	}
	var b strings.Builder
	for _, f := range fields {
		label := displayLabel(f)
		b.WriteString(label)
		b.WriteString(":")
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(label)+1))
		b.WriteString(f.Value.String())
		b.WriteString("\n")
	}
	return b.String()
}

func displayLabel(field record.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field record.Field) string {
	hint := formatHint(field.Value)
	switch {
	case field.Description == "":
		return hint
	case hint == "":
		return field.Description
	default:
		return field.Description + " (" + hint + ")"
	}
}

// formatHint describes the expected text layout of calendar and decimal
// values.
func formatHint(v value.Value) string {
	switch t := v.(type) {
	case *value.Date:
		return datePattern(t.Order(), t.Separator())
	case *value.Clock:
		return clockPattern(t.Separator(), t.WithSeconds())
	case *value.DateTime:
		clock := clockPattern(t.TimeSeparator(), t.WithSeconds())
		if t.TimeOptional() {
			clock = "[" + clock + "]"
		}
		return datePattern(t.Order(), t.DateSeparator()) + string(t.DateTimeSeparator()) + clock
	case *value.Decimal:
		if t.GroupSeparator() == 0 {
			return "1234" + string(t.DecimalSeparator()) + "56"
		}
		return "1" + string(t.GroupSeparator()) + "234" + string(t.DecimalSeparator()) + "56"
	}
	return ""
}

func datePattern(order value.DateOrder, sep rune) string {
	parts := map[byte]string{'d': "dd", 'm': "mm", 'y': "yyyy"}
	var out []string
	for i := 0; i < len(order); i++ {
		out = append(out, parts[order[i]])
	}
	return strings.Join(out, string(sep))
}

func clockPattern(sep rune, seconds bool) string {
	parts := []string{"hh", "mm"}
	if seconds {
		parts = append(parts, "ss")
	}
	return strings.Join(parts, string(sep))
}

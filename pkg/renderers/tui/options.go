package tui

import (
	"log/slog"

	"github.com/goliatone/go-formvalue/pkg/widgets"
)

// OutputFormat controls how a filled record is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON object in field order.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits a YAML mapping in field order.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat validates a format name.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(name); f {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return f, nil
	default:
		return "", ErrUnknownFormat
	}
}

// Theme captures optional message prefixes the renderer applies when
// reporting through the driver.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithRegistry replaces the widget registry used to pick prompts.
func WithRegistry(reg *widgets.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger logs rejected answers at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

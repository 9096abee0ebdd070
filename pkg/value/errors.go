package value

import "errors"

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrInvalidFormat = errors.New("value: invalid format")
	ErrRange         = errors.New("value: out of range")
	ErrConfiguration = errors.New("value: invalid configuration")
)

// InvalidFormatError is returned by the strict path when the input cannot be
// interpreted by the type's parser at all. No state is committed.
type InvalidFormatError struct {
	// Kind is the value type that rejected the input.
	Kind Kind
	// Input is the exact text that was supplied.
	Input string
	// Reason is a short explanation, for example "unexpected character".
	Reason string
}

func (e *InvalidFormatError) Error() string {
	msg := "value: invalid " + string(e.Kind) + " " + quote(e.Input)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is reports whether target is ErrInvalidFormat.
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// RangeError is returned when the input parses but violates a configured
// bound: numeric min/max, digit limits, sign, or a calendar component.
type RangeError struct {
	Kind   Kind
	Input  string
	Reason string
}

func (e *RangeError) Error() string {
	msg := "value: " + string(e.Kind) + " " + quote(e.Input) + " out of range"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is reports whether target is ErrRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}

// ConfigurationError is returned by configuration setters given inconsistent
// settings, or asked to change a format that is frozen by the current value.
type ConfigurationError struct {
	Kind    Kind
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return "value: cannot configure " + string(e.Kind) + "." + e.Setting + ": " + e.Reason
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func quote(s string) string {
	return "\"" + s + "\""
}

package config

import "errors"

var (
	// ErrSeparator is returned when a separator setting is not one character.
	ErrSeparator = errors.New("config: separator must be a single character")
	// ErrLanguage is returned for an unparseable language tag.
	ErrLanguage = errors.New("config: invalid language tag")
)

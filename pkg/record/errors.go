package record

import "errors"

var (
	// ErrEmptyName is returned when a field is added without a name.
	ErrEmptyName = errors.New("record: field name is required")
	// ErrNilValue is returned when a field is added without a value.
	ErrNilValue = errors.New("record: field value is required")
	// ErrDuplicateField is returned when a name is already taken.
	ErrDuplicateField = errors.New("record: duplicate field")
	// ErrUnknownField is returned by bulk setters for names the record lacks.
	ErrUnknownField = errors.New("record: unknown field")
)

package schema

import "errors"

var (
	// ErrEmptyDocument is returned when a definition payload has no content.
	ErrEmptyDocument = errors.New("schema: document is empty")
	// ErrNoFields is returned for a definition without fields.
	ErrNoFields = errors.New("schema: definition has no fields")
	// ErrFieldName is returned when a field has no name.
	ErrFieldName = errors.New("schema: field name is required")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("schema: duplicate field")
	// ErrUnknownKind is returned for a field kind the value package does not
	// provide.
	ErrUnknownKind = errors.New("schema: unknown value kind")
	// ErrInvalidField wraps configuration mistakes within a single field.
	ErrInvalidField = errors.New("schema: invalid field")
)

package openapi

import "errors"

var (
	// ErrEmptyDocument is returned for an empty payload.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrSchemaNotFound is returned when the named component or operation
	// does not exist.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrNotObject is returned when the selected schema is not an object.
	ErrNotObject = errors.New("openapi: schema is not an object")
)

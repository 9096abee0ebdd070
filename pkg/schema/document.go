package schema

import (
	"errors"
	"fmt"
)

// Document wraps a raw definition payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrEmptyDocument, src.Location())
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// ReadDocument reads the payload behind src.
func ReadDocument(src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	raw, err := src.read()
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", src.Location(), err)
	}
	return NewDocument(src, raw)
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Definition decodes and validates the payload.
func (d Document) Definition() (Definition, error) {
	def, err := Parse(d.raw)
	if err != nil {
		return Definition{}, fmt.Errorf("schema: %s: %w", d.Location(), err)
	}
	if def.Name == "" {
		def.Name = baseName(d.Location())
	}
	return def, nil
}

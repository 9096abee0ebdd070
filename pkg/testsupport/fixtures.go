package testsupport

import (
	"context"
	"os"
	"testing"

	"github.com/goliatone/go-formvalue/pkg/record"
	"github.com/goliatone/go-formvalue/pkg/schema"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// LoadDefinition reads a definition fixture from disk.
func LoadDefinition(t *testing.T, path string) schema.Definition {
	t.Helper()

	def, err := schema.Load(schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// ParseDefinition parses an inline YAML definition.
func ParseDefinition(t *testing.T, doc string) schema.Definition {
	t.Helper()

	def, err := schema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}
	return def
}

// MustBuild builds a record from def with the default locale.
func MustBuild(t *testing.T, def schema.Definition, opts ...record.Option) *record.Record {
	t.Helper()

	rec, err := schema.Build(def, nil, opts...)
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	return rec
}

// MustField returns the named value of rec.
func MustField(t *testing.T, rec *record.Record, name string) value.Value {
	t.Helper()

	v, ok := rec.Field(name)
	if !ok {
		t.Fatalf("record has no field %q", name)
	}
	return v
}

// MustReadFile reads a fixture file and returns its raw bytes.
func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

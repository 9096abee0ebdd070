package schema

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Source identifies where a definition document originated so loaders can
// read files or fs.FS entries alike.
type Source interface {
	Kind() SourceKind
	Location() string
	read() ([]byte, error)
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind      { return SourceKindFile }
func (s fileSource) Location() string      { return s.path }
func (s fileSource) read() ([]byte, error) { return os.ReadFile(s.path) }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	fsys fs.FS
	name string
}

func (s fsSource) Kind() SourceKind      { return SourceKindFS }
func (s fsSource) Location() string      { return s.name }
func (s fsSource) read() ([]byte, error) { return fs.ReadFile(s.fsys, s.name) }

// SourceFromFS returns a Source for a file inside fsys.
func SourceFromFS(fsys fs.FS, name string) Source {
	return fsSource{fsys: fsys, name: name}
}

// Package storage defines the read-only view of the post directory.
package storage

import (
	"io/fs"

	"github.com/spf13/afero"
)

// Provider is the interface for post file access. Paths are relative to the
// store root.
type Provider interface {
	// ReadDir lists the direct children of dir, sorted by name.
	ReadDir(dir string) ([]fs.FileInfo, error)
	// Stat describes the file at path.
	Stat(path string) (fs.FileInfo, error)
	// Open opens the file at path for reading. The caller closes it.
	Open(path string) (afero.File, error)
	// Root returns the directory the provider is rooted at.
	Root() string
}

package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FS implements Provider on top of an afero file system.
type FS struct {
	fs   afero.Fs
	root string
}

// NewFS creates a provider rooted at root on the OS file system.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	return NewAferoFS(afero.NewOsFs(), abs)
}

// NewAferoFS creates a provider rooted at root on fsys.
func NewAferoFS(fsys afero.Fs, root string) (*FS, error) {
	root = filepath.Clean(root)
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", root)
	}
	return &FS{fs: fsys, root: root}, nil
}

// Root returns the directory the provider is rooted at.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the root and rejects any result
// that escapes it.
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(joined, f.root+string(os.PathSeparator)) && joined != f.root {
		return "", fmt.Errorf("storage: path escapes root: %s", rel)
	}
	return joined, nil
}

// ReadDir lists the direct children of dir.
func (f *FS) ReadDir(dir string) ([]fs.FileInfo, error) {
	abs, err := f.safePath(dir)
	if err != nil {
		return nil, err
	}
	return afero.ReadDir(f.fs, abs)
}

// Stat describes the file at path.
func (f *FS) Stat(path string) (fs.FileInfo, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	return f.fs.Stat(abs)
}

// Open opens the file at path for reading.
func (f *FS) Open(path string) (afero.File, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	return f.fs.Open(abs)
}

// Package testutil provides shared test helpers for setting up post directories.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/starford/blogon/internal/storage"
)

// MemRoot is the root directory of the in-memory stores built by MemPosts.
const MemRoot = "/posts"

// MemPosts creates an in-memory posts directory holding files, keyed by
// path relative to the root.
func MemPosts(t *testing.T, files map[string]string) (afero.Fs, storage.Provider) {
	t.Helper()
	mem := afero.NewMemMapFs()
	if err := mem.MkdirAll(MemRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		WriteFile(t, mem, filepath.Join(MemRoot, rel), content)
	}
	provider, err := storage.NewAferoFS(mem, MemRoot)
	if err != nil {
		t.Fatal(err)
	}
	return mem, provider
}

// TempPosts creates a temporary posts directory on disk holding files.
func TempPosts(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	fsys := afero.NewOsFs()
	for rel, content := range files {
		WriteFile(t, fsys, filepath.Join(dir, rel), content)
	}
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Post returns a post file with the given header fields and body.
// An empty date makes a draft.
func Post(title, date, body string) string {
	header := "---\ntitle: " + title + "\n"
	if date != "" {
		header += "date: " + date + "\n"
	}
	return header + "tags: [go]\n---\n" + body
}

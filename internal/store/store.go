// Package store is the read-only content store: it lists the posts of a
// directory and renders one post by slug.
//
// A Store only holds configuration. Every call opens, reads and closes its
// own files and nothing is cached, so a Store is safe for concurrent use.
package store

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/starford/blogon/internal/apperr"
	"github.com/starford/blogon/internal/frontmatter"
	"github.com/starford/blogon/internal/models"
	"github.com/starford/blogon/internal/render"
	"github.com/starford/blogon/internal/slug"
	"github.com/starford/blogon/internal/storage"
)

// Store lists and renders the posts found under a root directory.
type Store struct {
	provider   storage.Provider
	production bool
	logger     *slog.Logger
	renderer   *render.Renderer
}

// Option configures a Store.
type Option func(*Store)

// WithProduction excludes drafts from listings when enabled.
func WithProduction(enabled bool) Option {
	return func(s *Store) {
		s.production = enabled
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store reading posts through provider.
func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{provider: provider}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.renderer = render.New(s.logger)
	return s
}

// Open creates a Store on the directory root of the OS file system.
func Open(root string, opts ...Option) (*Store, error) {
	provider, err := storage.NewFS(root)
	if err != nil {
		return nil, apperr.IO(root, err)
	}
	return New(provider, opts...), nil
}

// List returns the catalog of the posts under root.
func List(root string, production bool) ([]models.FrontMatter, error) {
	s, err := Open(root, WithProduction(production))
	if err != nil {
		return nil, err
	}
	return s.List()
}

// Render renders the post identified by slug under root.
func Render(root, postSlug string) (models.Post, error) {
	s, err := Open(root)
	if err != nil {
		return models.Post{}, err
	}
	return s.Render(postSlug)
}

// Root returns the directory the posts are read from.
func (s *Store) Root() string {
	return s.provider.Root()
}

// Production reports whether drafts are hidden from listings.
func (s *Store) Production() bool {
	return s.production
}

// Render renders the post identified by postSlug.
//
// The slug is mapped back to a NNNN_name.md file name. When that name is a
// directory, or when only a NNNN_name directory exists, its post.md is
// rendered.
func (s *Store) Render(postSlug string) (models.Post, error) {
	name, err := slug.FileName(postSlug)
	if err != nil {
		return models.Post{}, err
	}

	info, err := s.provider.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		dir := strings.TrimSuffix(name, ".md")
		if dirInfo, dirErr := s.provider.Stat(dir); dirErr == nil && dirInfo.IsDir() {
			name, info, err = dir, dirInfo, nil
		}
	}
	if err != nil {
		return models.Post{}, apperr.IO(s.abs(name), err)
	}
	s.logger.Info("store: resolved slug", slog.String("slug", postSlug), slog.String("file", name))

	e := entry{kind: fileEntry, name: name}
	if info.IsDir() {
		e.kind = dirEntry
	}
	return s.renderEntry(e)
}

func (s *Store) renderEntry(e entry) (models.Post, error) {
	docPath := e.docPath()
	f, err := s.provider.Open(docPath)
	if err != nil {
		return models.Post{}, apperr.IO(s.abs(docPath), err)
	}
	defer f.Close()

	meta, block, err := frontmatter.Read(f, s.abs(docPath))
	if err != nil {
		return models.Post{}, err
	}
	if _, err := f.Seek(block.BodyOffset, io.SeekStart); err != nil {
		return models.Post{}, apperr.IO(s.abs(docPath), err)
	}
	body, err := io.ReadAll(f)
	if err != nil {
		return models.Post{}, apperr.IO(s.abs(docPath), err)
	}

	fm := models.FrontMatter{Slug: e.slug(), Metadata: meta}
	return s.renderer.Render(fm, body, s.abs(docPath))
}

func (s *Store) readFrontMatter(e entry) (models.FrontMatter, error) {
	docPath := e.docPath()
	f, err := s.provider.Open(docPath)
	if err != nil {
		return models.FrontMatter{}, apperr.IO(s.abs(docPath), err)
	}
	defer f.Close()

	meta, _, err := frontmatter.Read(f, s.abs(docPath))
	if err != nil {
		return models.FrontMatter{}, err
	}
	return models.FrontMatter{Slug: e.slug(), Metadata: meta}, nil
}

// SlugForPath returns the slug of the post a changed file belongs to, or ""
// when the file is not part of a post. rel is relative to the root.
func SlugForPath(rel string) string {
	rel = filepath.ToSlash(rel)
	dir, file := path.Split(rel)
	dir = path.Clean(dir)
	var name string
	switch {
	case dir == "." && path.Ext(file) == ".md":
		name = file
	case dir != "." && path.Dir(dir) == "." && file == PostFile:
		name = dir
	default:
		return ""
	}
	if leadingDigits(name) < minLeadingDigits {
		return ""
	}
	return entry{name: name}.slug()
}

// IsNotFound reports whether err means the requested post does not exist,
// either because the slug does not resolve or because its file is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

func (s *Store) abs(rel string) string {
	return filepath.Join(s.provider.Root(), rel)
}

// Package postservice is the layer the HTTP and MCP collaborators share on
// top of the content store.
package postservice

import (
	"context"
	"errors"
	"slices"

	"github.com/starford/blogon/internal/apperr"
	"github.com/starford/blogon/internal/checksum"
	"github.com/starford/blogon/internal/models"
	"github.com/starford/blogon/internal/store"
)

// PostDetail is a rendered post with the checksum of its HTML.
type PostDetail struct {
	models.Post
	Checksum string `json:"checksum"`
}

// Service serves posts from a store.
type Service struct {
	store *store.Store
}

// NewService creates a new post service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Production reports whether drafts are hidden.
func (s *Service) Production() bool {
	return s.store.Production()
}

// ListPosts returns the catalog, optionally restricted to posts carrying tag.
func (s *Service) ListPosts(_ context.Context, tag string) ([]models.FrontMatter, error) {
	index, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return index, nil
	}
	return slices.DeleteFunc(index, func(fm models.FrontMatter) bool {
		return !slices.Contains(fm.Metadata.Tags, tag)
	}), nil
}

// GetPost renders the post identified by slug.
// A slug that does not resolve to a file yields apperr.ErrNotFound.
func (s *Service) GetPost(_ context.Context, slug string) (*PostDetail, error) {
	post, err := s.store.Render(slug)
	if err != nil {
		if store.IsNotFound(err) && !errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound(slug, err)
		}
		return nil, err
	}
	return &PostDetail{
		Post:     post,
		Checksum: checksum.Sum([]byte(post.HTMLBody)),
	}, nil
}

// GetTOC returns the table of contents of the post identified by slug.
func (s *Service) GetTOC(ctx context.Context, slug string) ([]models.Heading, error) {
	detail, err := s.GetPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	return detail.TOC, nil
}

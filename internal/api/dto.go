package api

import (
	"github.com/starford/blogon/internal/models"
	"github.com/starford/blogon/internal/postservice"
)

// PostDetail is the full post response type (aliased from the domain layer).
type PostDetail = postservice.PostDetail

// PostListResponse wraps the post catalog.
type PostListResponse struct {
	Posts []models.FrontMatter `json:"posts" validate:"required"`
	Total int                  `json:"total" example:"42" validate:"required"`
}

// TOCResponse wraps the table of contents of a post.
type TOCResponse struct {
	Slug string           `json:"slug" example:"0001-hello-world" validate:"required"`
	TOC  []models.Heading `json:"toc" validate:"required"`
}

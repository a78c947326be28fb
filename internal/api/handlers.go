package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/blogon/internal/checksum"
	"github.com/starford/blogon/internal/postservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *postservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *postservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListPosts handles GET /api/posts.
//
//	@Summary		List posts, newest first
//	@Tags			posts
//	@Produce		json
//	@Param			tag	query		string	false	"Filter by tag"
//	@Success		200	{object}	PostListResponse
//	@Failure		500	{object}	errResponse
//	@Router			/posts [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		slog.Error("list posts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, PostListResponse{
		Posts: posts,
		Total: len(posts),
	})
}

// GetPost handles GET /api/posts/{slug}.
//
//	@Summary		Render a single post
//	@Tags			posts
//	@Produce		json
//	@Param			slug			path		string	true	"Post slug"
//	@Param			If-None-Match	header		string	false	"Checksum of a previously fetched body"
//	@Success		200				{object}	PostDetail
//	@Success		304				"Not modified"
//	@Failure		404				{object}	errResponse
//	@Router			/posts/{slug} [get]
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.svc.GetPost(r.Context(), slug)
	if err != nil {
		writeError(w, "get post failed", slug, err)
		return
	}

	w.Header().Set("ETag", checksum.ETag(post.Checksum))
	if match := r.Header.Get("If-None-Match"); match != "" && checksum.MatchesAny(match, post.Checksum) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetTOC handles GET /api/posts/{slug}/toc.
//
//	@Summary		Get the table of contents of a post
//	@Tags			posts
//	@Produce		json
//	@Param			slug	path		string	true	"Post slug"
//	@Success		200		{object}	TOCResponse
//	@Failure		404		{object}	errResponse
//	@Router			/posts/{slug}/toc [get]
func (h *Handler) GetTOC(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	toc, err := h.svc.GetTOC(r.Context(), slug)
	if err != nil {
		writeError(w, "get toc failed", slug, err)
		return
	}
	writeJSON(w, http.StatusOK, TOCResponse{Slug: slug, TOC: toc})
}

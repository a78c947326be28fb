// Package render turns the Markdown body of a post into HTML with numbered,
// anchored sections and a table of contents.
package render

import (
	"bytes"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/starford/blogon/internal/apperr"
	"github.com/starford/blogon/internal/models"
)

// Renderer converts post bodies to HTML. It holds no per-document state and
// is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	logger *slog.Logger
}

// New creates a Renderer. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Footnote,
			extension.Strikethrough,
			extension.TaskList,
			&sectionNumbering{transformer: &tocTransformer{logger: logger}},
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md, logger: logger}
}

// Render builds the post made of fm and the Markdown body read from path.
func (r *Renderer) Render(fm models.FrontMatter, body []byte, path string) (models.Post, error) {
	if !utf8.Valid(body) {
		return models.Post{}, apperr.Malformed(path, errors.New("body is not valid utf-8"))
	}

	pc := parser.NewContext()
	doc := r.md.Parser().Parse(text.NewReader(body), parser.WithContext(pc))
	toc := TOC(pc)
	if toc == nil {
		toc = []models.Heading{}
	}

	var buf bytes.Buffer
	buf.Grow(len(body) * 3 / 2)
	if err := r.md.Renderer().Render(&buf, body, doc); err != nil {
		return models.Post{}, apperr.Malformedf(path, "render html: %w", err)
	}

	r.logger.Debug("render: post rendered",
		slog.String("slug", fm.Slug),
		slog.String("title", fm.Metadata.Title),
		slog.Int("headings", len(toc)))
	for _, h := range toc {
		r.logger.Debug("render: toc entry", slog.String("slug", fm.Slug), slog.String("heading", h.String()))
	}

	return models.Post{
		FrontMatter: fm,
		TOC:         toc,
		HTMLBody:    buf.String(),
	}, nil
}

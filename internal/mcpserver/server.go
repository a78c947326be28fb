// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the blog posts to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/blogon/internal/apperr"
	"github.com/starford/blogon/internal/postservice"
)

// PostFormatURI identifies the post format resource.
const PostFormatURI = "blogon://post-format"

// Server wraps the MCP server with the post tools.
type Server struct {
	mcp *server.MCPServer
	svc *postservice.Service
}

// New creates a new MCP server with all post tools registered.
func New(svc *postservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Blogon",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List the posts, newest first. Drafts have a null date."),
		mcp.WithString("tag", mcp.Description("Optional tag the posts must carry")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Render a post and return its metadata, table of contents and HTML body as JSON."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug as returned by list_posts (e.g. 0001-hello-world)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("get_post_toc",
		mcp.WithDescription("Return the numbered table of contents of a post, one heading per line."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug")),
	), s.getPostTOC)

	s.mcp.AddTool(mcp.NewTool("get_post_format",
		mcp.WithDescription("Returns the post file format: naming convention, front matter fields and Markdown features. "+
			"Call this before drafting a new post."),
	), s.getPostFormat)

	s.mcp.AddResource(
		mcp.NewResource(PostFormatURI, "Post Format",
			mcp.WithResourceDescription("File naming and front matter convention every post follows."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPostFormatResource,
	)

	return s
}

// ServeStdio serves MCP requests read from stdin until ctx is cancelled or
// stdin is closed. Responses are written to stdout.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.svc.ListPosts(ctx, req.GetString("tag", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcpserver: encode posts: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.svc.GetPost(ctx, slug)
	if err != nil {
		return toolError(slug, err), nil
	}
	out, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcpserver: encode post: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getPostTOC(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	toc, err := s.svc.GetTOC(ctx, slug)
	if err != nil {
		return toolError(slug, err), nil
	}
	if len(toc) == 0 {
		return mcp.NewToolResultText("no headings"), nil
	}
	var b strings.Builder
	for _, h := range toc {
		b.WriteString(strings.Repeat("  ", int(h.Level)-1))
		b.WriteString(h.String())
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) getPostFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PostFormatContract), nil
}

func (s *Server) readPostFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PostFormatURI,
			MIMEType: "text/markdown",
			Text:     PostFormatContract,
		},
	}, nil
}

func toolError(slug string, err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug))
	}
	return mcp.NewToolResultError(err.Error())
}

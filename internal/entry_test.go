package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/starford/blogon/internal/apperr"
	"github.com/starford/blogon/internal/models"
	"github.com/starford/blogon/internal/postservice"
	"github.com/starford/blogon/internal/sse"
	"github.com/starford/blogon/internal/store"
	"github.com/starford/blogon/internal/testutil"
)

func testConfig(t *testing.T, files map[string]string) *Config {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Store.Path = testutil.TempPosts(t, files)
	return cfg
}

func TestRouter_HealthAndAPI(t *testing.T) {
	_, provider := testutil.MemPosts(t, map[string]string{
		"0001_hello.md": testutil.Post("Hello", "2024-01-01", "# Hi\n"),
	})
	broker := sse.NewBroker(0)
	defer broker.Close()
	r := newRouter(postservice.NewService(store.New(provider)), broker)

	for _, path := range []string{"/health/live", "/health/ready", "/api/posts", "/api/posts/0001-hello"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}
}

func TestRouter_NotReadyOnBrokenPost(t *testing.T) {
	_, provider := testutil.MemPosts(t, map[string]string{
		"0001_broken.md": "no header\n",
	})
	r := newRouter(postservice.NewService(store.New(provider)), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready = %d, want 503", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("events without broker = %d, want 404", w.Code)
	}
}

func TestList_WritesCatalog(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"0001_old.md":   testutil.Post("Old", "2023-01-01", ""),
		"0002_new.md":   testutil.Post("New", "2024-01-01", ""),
		"0003_draft.md": testutil.Post("Draft", "", ""),
	})
	cfg.App.Production = true

	var stdout, stderr bytes.Buffer
	if err := List(context.Background(), WithConfig(cfg), WithStdio(nil, &stdout, &stderr)); err != nil {
		t.Fatalf("List: %v", err)
	}
	var posts []models.FrontMatter
	if err := json.Unmarshal(stdout.Bytes(), &posts); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout.String())
	}
	if len(posts) != 2 || posts[0].Slug != "0002-new" || posts[1].Slug != "0001-old" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestRender_WritesPost(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"0001_hello.md": testutil.Post("Hello", "2024-01-01", "# Hi\n"),
	})

	var stdout, stderr bytes.Buffer
	if err := Render(context.Background(), "0001-hello", WithConfig(cfg), WithStdio(nil, &stdout, &stderr)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(stdout.String(), `"html_body"`) || !strings.Contains(stdout.String(), `"checksum"`) {
		t.Errorf("output = %s", stdout.String())
	}

	err := Render(context.Background(), "0009-missing", WithConfig(cfg), WithStdio(nil, &stdout, &stderr))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestCommands_RequireConfig(t *testing.T) {
	ctx := context.Background()
	if err := Run(ctx); err == nil {
		t.Error("Run without config should fail")
	}
	if err := List(ctx); err == nil {
		t.Error("List without config should fail")
	}
	if err := Render(ctx, "0001-x"); err == nil {
		t.Error("Render without config should fail")
	}
	if err := ServeMCP(ctx); err == nil {
		t.Error("ServeMCP without config should fail")
	}
}

func TestCommands_MissingStoreDir(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Path = t.TempDir() + "/nope"
	var stdout, stderr bytes.Buffer
	err := List(context.Background(), WithConfig(cfg), WithStdio(nil, &stdout, &stderr))
	if !errors.Is(err, apperr.ErrIO) {
		t.Errorf("error = %v, want io", err)
	}
}

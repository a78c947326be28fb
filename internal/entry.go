// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/blogon/internal/api"
	"github.com/starford/blogon/internal/mcpserver"
	"github.com/starford/blogon/internal/postservice"
	"github.com/starford/blogon/internal/sse"
	"github.com/starford/blogon/internal/store"
	"github.com/starford/blogon/internal/watch"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(app.stdout, cfg)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_path", cfg.Store.Path),
		slog.Bool("production", cfg.App.Production),
		slog.String("log_level", cfg.App.LogLevel.String()))

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	svc := postservice.NewService(st)

	// Change notifications only matter while posts are being edited.
	var broker *sse.Broker
	if !cfg.App.Production {
		broker = sse.NewBroker(cfg.LiveReload.CatalogThrottle)
		defer broker.Close()
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newRouter(svc, broker),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	if broker != nil {
		g.Go(func() error {
			if err := watch.Watch(gCtx, st.Root(), logger, broker.PublishPostEvent); err != nil {
				logger.Error("watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group once the server has been shut down, so that
// the watcher stops too.
var errShutdown = errors.New("shutdown")

// List writes the post catalog to stdout as JSON.
func List(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	logger := newLogger(app.stderr, app.config)

	st, err := openStore(app.config, logger)
	if err != nil {
		return err
	}
	posts, err := postservice.NewService(st).ListPosts(ctx, "")
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	return writeIndented(app.stdout, posts)
}

// Render writes the post identified by slug to stdout as JSON.
func Render(ctx context.Context, slug string, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	logger := newLogger(app.stderr, app.config)

	st, err := openStore(app.config, logger)
	if err != nil {
		return err
	}
	post, err := postservice.NewService(st).GetPost(ctx, slug)
	if err != nil {
		return fmt.Errorf("render post: %w", err)
	}
	return writeIndented(app.stdout, post)
}

// ServeMCP serves the MCP tools over stdin and stdout until ctx is cancelled.
func ServeMCP(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	// stdout carries the protocol; logs go to stderr.
	logger := newLogger(app.stderr, app.config)
	slog.SetDefault(logger)

	st, err := openStore(app.config, logger)
	if err != nil {
		return err
	}
	logger.Info("MCP server starting", slog.String("store_path", st.Root()))
	return mcpserver.New(postservice.NewService(st)).ServeStdio(ctx, app.stdin, app.stdout)
}

func newLogger(w io.Writer, cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
}

func openStore(cfg *Config, logger *slog.Logger) (*store.Store, error) {
	st, err := store.Open(cfg.Store.Path,
		store.WithProduction(cfg.App.Production),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return st, nil
}

// newRouter mounts the health checks and the API. broker is nil in
// production.
func newRouter(svc *postservice.Service, broker *sse.Broker) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.ListPosts(r.Context(), ""); err != nil {
			slog.Warn("readiness check failed", slog.String("error", err.Error()))
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ok")
	})

	var events http.Handler
	if broker != nil {
		events = broker
	}
	r.Mount("/api", api.NewRouter(svc, events))

	return r
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

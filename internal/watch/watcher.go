// Package watch reports changes to the posts of a directory while it is
// being edited.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/blogon/internal/store"
)

// Change kinds passed to an EventCallback.
const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

// Debounce is how long changes to the same post are coalesced before being
// reported.
const Debounce = 150 * time.Millisecond

// EventCallback is called once per changed post after the debounce window.
// kind is one of Created, Updated, Deleted.
type EventCallback func(kind, slug string)

// Watch starts an fsnotify watcher on root and its direct subdirectories and
// reports post changes until ctx is cancelled.
//
// Directory posts created at runtime are added to the watch list. Files that
// do not follow the post naming convention are ignored.
func Watch(ctx context.Context, root string, logger *slog.Logger, cb EventCallback) error {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addPostDirs(w, root); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("root", root))

	pending := make(map[string]string)
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	schedule := func(kind, slug string) {
		pending[slug] = merge(pending[slug], kind)
		if flushTimer == nil {
			flushTimer = time.NewTimer(Debounce)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(Debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-flushCh:
			slugs := make([]string, 0, len(pending))
			for slug := range pending {
				slugs = append(slugs, slug)
			}
			slices.Sort(slugs)
			for _, slug := range slugs {
				kind := pending[slug]
				logger.Debug("watcher: post changed", slog.String("slug", slug), slog.String("op", kind))
				if cb != nil {
					cb(kind, slug)
				}
			}
			clear(pending)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			rel, relErr := filepath.Rel(root, ev.Name)
			if relErr != nil {
				continue
			}

			if ev.Op&fsnotify.Create != 0 && filepath.Dir(rel) == "." {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := w.Add(ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
						continue
					}
					logger.Debug("watcher: watching new dir", slog.String("path", ev.Name))
					if _, statErr := os.Stat(filepath.Join(ev.Name, store.PostFile)); statErr == nil {
						rel = filepath.Join(rel, store.PostFile)
					} else {
						continue
					}
				}
			}

			slug := store.SlugForPath(rel)
			if slug == "" {
				continue
			}
			switch {
			case ev.Op&fsnotify.Create != 0:
				schedule(Created, slug)
			case ev.Op&fsnotify.Write != 0:
				schedule(Updated, slug)
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// A rename reports the old path only; the new one arrives as
				// a separate Create.
				schedule(Deleted, slug)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// merge folds a new change into the one already pending for a post.
func merge(pending, next string) string {
	switch {
	case pending == "":
		return next
	case pending == Created && next == Updated:
		return Created
	case pending == Deleted && next == Created:
		return Updated
	case pending == Created && next == Deleted:
		return Deleted
	}
	return next
}

// addPostDirs adds root and its direct subdirectories to the watcher.
func addPostDirs(w *fsnotify.Watcher, root string) error {
	if err := w.Add(root); err != nil {
		return err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := w.Add(filepath.Join(root, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

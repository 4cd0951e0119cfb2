// Package watcher re-ingests documents when their source files change.
// Events are debounced per file and re-ingestion is throttled so a
// bulk copy into a watched directory doesn't thrash the pipeline.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driving"
	"github.com/quarry-labs/passage/internal/logger"
)

// DebounceInterval is the quiet period after the last event for a
// batch before re-ingestion starts.
const DebounceInterval = 500 * time.Millisecond

// IngestRate caps re-ingestions per second during bursts.
const IngestRate = 2.0

// DefaultExtensions are the file extensions watched by default.
var DefaultExtensions = []string{".md", ".markdown", ".txt", ".text", ".csv", ".tsv"}

// Watcher monitors a directory and re-ingests changed files.
type Watcher struct {
	ingest     driving.IngestService
	opts       domain.ChunkingOptions
	extensions map[string]struct{}
	limiter    *rate.Limiter
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions overrides the watched file extensions (with dots).
func WithExtensions(exts []string) Option {
	return func(w *Watcher) {
		w.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			w.extensions[strings.ToLower(ext)] = struct{}{}
		}
	}
}

// WithRate overrides the ingestions-per-second throttle.
func WithRate(perSecond float64) Option {
	return func(w *Watcher) {
		w.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// New creates a watcher that re-ingests changed files through ingest.
func New(ingest driving.IngestService, opts domain.ChunkingOptions, options ...Option) *Watcher {
	w := &Watcher{
		ingest:  ingest,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(IngestRate), 1),
	}
	WithExtensions(DefaultExtensions)(w)
	for _, opt := range options {
		opt(w)
	}
	return w
}

// Watch blocks watching dir until ctx is cancelled.
// Create and write events re-ingest the file; other events are ignored.
// Ingestion failures are logged and the watch continues.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return err
	}
	logger.Info("Watching %s", dir)

	// Debounce: collect events and process after a quiet period.
	pending := map[string]struct{}{}
	timer := time.NewTimer(24 * time.Hour) // initially idle
	timer.Stop()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.watched(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(DebounceInterval)

		case <-timer.C:
			for path := range pending {
				if err := w.limiter.Wait(ctx); err != nil {
					return err
				}
				w.reingest(ctx, path)
			}
			pending = map[string]struct{}{}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watch error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) watched(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := w.extensions[ext]
	return ok
}

func (w *Watcher) reingest(ctx context.Context, path string) {
	result, err := w.ingest.IngestFile(ctx, path, w.opts)
	if err != nil {
		logger.Error("Re-ingest %s failed: %v", filepath.Base(path), err)
		return
	}
	if result.Unchanged {
		logger.Debug("Unchanged: %s", filepath.Base(path))
		return
	}
	logger.Info("Re-ingested %s (%d chunks, %s)",
		filepath.Base(path), len(result.Chunks), result.Strategy)
}

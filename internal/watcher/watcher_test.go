package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driving"
)

// recordingIngest records ingested paths and signals on each call.
type recordingIngest struct {
	mu     sync.Mutex
	paths  []string
	called chan string
}

func newRecordingIngest() *recordingIngest {
	return &recordingIngest{called: make(chan string, 16)}
}

func (r *recordingIngest) IngestFile(
	_ context.Context, path string, _ domain.ChunkingOptions,
) (*driving.IngestResult, error) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.called <- path
	return &driving.IngestResult{
		Document: domain.Document{ID: "doc-1", Status: domain.StatusComplete},
		Strategy: domain.StrategyPlainText,
	}, nil
}

func TestWatcher_DefaultExtensions(t *testing.T) {
	w := New(newRecordingIngest(), domain.ChunkingOptions{})

	tests := []struct {
		path string
		want bool
	}{
		{"/dir/manual.md", true},
		{"/dir/MANUAL.MD", true},
		{"/dir/notes.txt", true},
		{"/dir/parts.csv", true},
		{"/dir/photo.png", false},
		{"/dir/noext", false},
	}
	for _, tt := range tests {
		if got := w.watched(tt.path); got != tt.want {
			t.Errorf("watched(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcher_WithExtensions(t *testing.T) {
	w := New(newRecordingIngest(), domain.ChunkingOptions{}, WithExtensions([]string{".rst"}))

	if !w.watched("/dir/doc.rst") {
		t.Error("override extension not watched")
	}
	if w.watched("/dir/doc.md") {
		t.Error("default extension still watched after override")
	}
}

func TestWatcher_ReingestsChangedFile(t *testing.T) {
	dir := t.TempDir()
	ingest := newRecordingIngest()
	w := New(ingest, domain.ChunkingOptions{}, WithRate(100))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, dir) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "manual.md")
	if err := os.WriteFile(path, []byte("# Manual\n\nBody.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ingest.called:
		if got != path {
			t.Errorf("ingested %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for re-ingest")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Watch returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestWatcher_IgnoresUnwatchedFiles(t *testing.T) {
	dir := t.TempDir()
	ingest := newRecordingIngest()
	w := New(ingest, domain.ChunkingOptions{}, WithRate(100))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Watch(ctx, dir) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "photo.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ingest.called:
		t.Errorf("unexpected ingest of %q", got)
	case <-time.After(2 * DebounceInterval):
	}
}

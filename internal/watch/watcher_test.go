// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func startWatcher(t *testing.T, cfg Config) (cancel func()) {
	t.Helper()

	cfg.Logger = log.New(io.Discard)
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancelCtx := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	return func() {
		cancelCtx()
		if err := <-errCh; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	}
}

// TestWatcherDebounce verifies that rapid writes to several watched files
// produce a single callback naming all of them.
func TestWatcherDebounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{filepath.Join(dir, "a.cue"), filepath.Join(dir, "b.cue")}
	for _, f := range files {
		writeFile(t, f, "id: \"x\"")
	}

	var (
		mu        sync.Mutex
		calls     int
		collected []string
	)
	done := make(chan struct{})

	stop := startWatcher(t, Config{
		Files:    files,
		Debounce: 100 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			collected = append(collected, changed...)
			if calls == 1 {
				close(done)
			}
			return nil
		},
	})

	for _, f := range files {
		writeFile(t, f, "id: \"y\"")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(200 * time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("callbacks = %d, want 1", calls)
	}
	for _, f := range files {
		if !slices.Contains(collected, f) {
			t.Errorf("changed = %v, missing %s", collected, f)
		}
	}
}

// TestWatcherIgnoresOtherFiles checks that files sharing a directory with a
// watched file do not trigger the callback.
func TestWatcherIgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watched := filepath.Join(dir, "pages.cue")
	writeFile(t, watched, "id: \"x\"")

	fired := make(chan []string, 10)
	stop := startWatcher(t, Config{
		Files:    []string{watched},
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})
	defer stop()

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")

	select {
	case changed := <-fired:
		t.Fatalf("unexpected callback for %v", changed)
	case <-time.After(300 * time.Millisecond):
	}

	writeFile(t, watched, "id: \"y\"")
	select {
	case changed := <-fired:
		if len(changed) != 1 || changed[0] != watched {
			t.Errorf("changed = %v, want [%s]", changed, watched)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestWatcherRunTwice(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := filepath.Join(dir, "pages.cue")
	writeFile(t, f, "")

	w, err := New(Config{Files: []string{f}, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if err := w.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestNewRequiresFiles(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); err == nil {
		t.Error("New() with no files succeeded, want error")
	}
	if _, err := New(Config{Files: []string{filepath.Join(t.TempDir(), "missing", "pages.cue")}}); err == nil {
		t.Error("New() with a missing directory succeeded, want error")
	}
}

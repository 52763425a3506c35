package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgmerge/internal/adapters/watcher"
	"go.trai.ch/pkgmerge/internal/core/domain"
	"go.trai.ch/pkgmerge/internal/core/ports"
)

func nextEvent(t *testing.T, w *watcher.Watcher) ports.WatchEvent {
	t.Helper()

	got := make(chan ports.WatchEvent, 1)
	go func() {
		for event := range w.Events() {
			got <- event
			return
		}
	}()

	select {
	case event := <-got:
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return ports.WatchEvent{}
	}
}

func TestWatcher_ReportsChangedTargets(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "package.base.json")
	extra := filepath.Join(dir, "package.extra.json")
	other := filepath.Join(dir, "README.md")
	for _, p := range []string{base, extra, other} {
		require.NoError(t, os.WriteFile(p, []byte("{}"), domain.PrivateFilePerm))
	}

	w := watcher.NewWatcher(watcher.WithDebounceWindow(20*time.Millisecond), watcher.WithMaxWait(200*time.Millisecond))
	require.NoError(t, w.Start(t.Context(), []string{base, extra}))
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(other, []byte("ignored"), domain.PrivateFilePerm))
	require.NoError(t, os.WriteFile(extra, []byte(`{"a":1}`), domain.PrivateFilePerm))

	event := nextEvent(t, w)
	assert.Equal(t, []string{extra}, event.Paths)
}

func TestWatcher_StartTwice(t *testing.T) {
	dir := t.TempDir()
	w := watcher.NewWatcher()
	require.NoError(t, w.Start(t.Context(), []string{filepath.Join(dir, "a.json")}))
	t.Cleanup(func() { _ = w.Stop() })

	assert.ErrorIs(t, w.Start(t.Context(), []string{filepath.Join(dir, "a.json")}), domain.ErrWatcherStartFailed)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := watcher.NewWatcher()
	err := w.Start(t.Context(), []string{filepath.Join(t.TempDir(), "missing", "a.json")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWatcherStartFailed)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	w := watcher.NewWatcher()
	require.NoError(t, w.Start(t.Context(), []string{filepath.Join(t.TempDir(), "a.json")}))

	ended := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(ended)
	}()

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case <-ended:
	case <-time.After(5 * time.Second):
		t.Fatal("events iterator did not end after Stop")
	}
}

package watcher

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/pkgmerge/internal/core/domain"
	"go.trai.ch/pkgmerge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const (
	// DefaultDebounceWindow is the quiet time that ends a batch of file events.
	DefaultDebounceWindow = 100 * time.Millisecond
	// DefaultMaxWait bounds how long a steady stream of events can delay a batch.
	DefaultMaxWait = time.Second
)

const eventChannelBuffer = 16

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceWindow overrides DefaultDebounceWindow.
func WithDebounceWindow(window time.Duration) Option {
	return func(w *Watcher) {
		w.window = window
	}
}

// WithMaxWait overrides DefaultMaxWait. Zero disables the bound.
func WithMaxWait(maxWait time.Duration) Option {
	return func(w *Watcher) {
		w.maxWait = maxWait
	}
}

// Watcher implements ports.Watcher using fsnotify.
// It watches the parent directories of the requested files so that editors
// replacing a file through rename are still observed.
type Watcher struct {
	window  time.Duration
	maxWait time.Duration

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	targets   map[string]string

	events   chan ports.WatchEvent
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a new file watcher.
func NewWatcher(opts ...Option) *Watcher {
	w := &Watcher{
		window:  DefaultDebounceWindow,
		maxWait: DefaultMaxWait,
		targets: make(map[string]string),
		events:  make(chan ports.WatchEvent, eventChannelBuffer),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching the given files.
func (w *Watcher) Start(ctx context.Context, paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher != nil {
		return zerr.Wrap(domain.ErrWatcherStartFailed, "watcher already started")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(domain.ErrWatcherStartFailed, err)
	}

	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = fsWatcher.Close()
			return zerr.With(errors.Join(domain.ErrWatcherStartFailed, err), "path", path)
		}
		w.targets[abs] = path

		dir := filepath.Dir(abs)
		if _, seen := dirs[dir]; seen {
			continue
		}
		dirs[dir] = struct{}{}
		if err := fsWatcher.Add(dir); err != nil {
			_ = fsWatcher.Close()
			return zerr.With(errors.Join(domain.ErrWatcherStartFailed, err), "path", dir)
		}
	}

	w.fsWatcher = fsWatcher
	w.debouncer = NewDebouncer(w.window, w.maxWait, w.emit)

	go w.processEvents(ctx, fsWatcher)

	return nil
}

// Stop stops the watcher and releases all resources. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
	})

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debouncer != nil {
		w.debouncer.Stop()
	}
	if w.fsWatcher == nil {
		return nil
	}
	err := w.fsWatcher.Close()
	w.fsWatcher = nil
	return err
}

// Events returns an iterator of debounced change batches.
// The iterator ends once the watcher is stopped or its context is cancelled.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case <-w.done:
				return
			case event := <-w.events:
				if !yield(event) {
					return
				}
			}
		}
	}
}

func (w *Watcher) emit(paths []string) {
	select {
	case w.events <- ports.WatchEvent{Paths: paths}:
	case <-w.done:
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return
		case <-w.done:
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			if target, ok := w.lookup(event.Name); ok {
				w.debouncer.Add(target)
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

func (w *Watcher) lookup(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	target, ok := w.targets[abs]
	return target, ok
}

// Package watcher implements file watching for watch mode.
package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer coalesces rapid file system events into batches.
// A batch is delivered once no path was added for the quiet window, or once
// maxWait has passed since the batch started, whichever comes first.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	deadline time.Time
	window   time.Duration
	maxWait  time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a debouncer. A maxWait of zero lets a steady stream of
// events postpone the batch indefinitely. The callback receives sorted paths.
func NewDebouncer(window, maxWait time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]struct{}),
		window:   window,
		maxWait:  maxWait,
		callback: callback,
	}
}

// Add adds a path to the pending batch and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if len(d.pending) == 0 {
		d.deadline = now.Add(d.maxWait)
	}
	d.pending[path] = struct{}{}

	delay := d.window
	if d.maxWait > 0 {
		delay = min(delay, max(d.deadline.Sub(now), 0))
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, d.fire)
}

// Stop cancels the pending batch.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}
	clear(d.pending)
	d.mu.Unlock()

	slices.Sort(paths)
	if d.callback != nil {
		d.callback(paths)
	}
}

package ports

import (
	"context"
	"iter"
)

// WatchEvent is a debounced batch of changes to watched files.
type WatchEvent struct {
	// Paths lists the changed files, as they were passed to Start, sorted.
	Paths []string
}

// Watcher defines the interface for watching a set of files for changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given files.
	// Events stop and the iterator ends once ctx is cancelled or Stop is called.
	Start(ctx context.Context, paths []string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of debounced change batches.
	Events() iter.Seq[WatchEvent]
}

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pkgmerge/internal/adapters/config"
	_ "go.trai.ch/pkgmerge/internal/adapters/fs"
	_ "go.trai.ch/pkgmerge/internal/adapters/logger"
	_ "go.trai.ch/pkgmerge/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/pkgmerge/internal/app"
)

package app

import "go.trai.ch/pkgmerge/internal/core/ports"

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

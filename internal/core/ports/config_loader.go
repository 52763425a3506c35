package ports

import "go.trai.ch/pkgmerge/internal/core/domain"

// ConfigLoader defines the interface for loading merge jobs from a config file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the config file at path and returns its merge jobs.
	// Relative paths in the file are resolved against the file's directory.
	Load(path string) ([]domain.MergeConfig, error)
}

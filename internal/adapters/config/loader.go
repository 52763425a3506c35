// Package config provides the configuration loader for pkgmerge.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pkgmerge/internal/core/domain"
	"go.trai.ch/pkgmerge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the config file at path and returns its merge jobs in declaration order.
// Relative paths in the file are resolved against the file's directory.
func (l *Loader) Load(path string) ([]domain.MergeConfig, error) {
	var cfg Configfile
	if err := readAndUnmarshalYAML(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Version != "" && cfg.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unknown version %q in %s, reading it as version %s",
			cfg.Version, filepath.Base(path), SupportedVersion))
	}

	if len(cfg.Merges) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoMergeJobs, "nothing to merge"), "path", path)
	}

	root := filepath.Dir(path)
	jobs := make([]domain.MergeConfig, 0, len(cfg.Merges))
	for i, dto := range cfg.Merges {
		if dto == nil {
			dto = &MergeDTO{}
		}
		job := domain.MergeConfig{
			BasePath:   resolvePath(root, dto.Base),
			ExtraPath:  resolvePath(root, dto.Extra),
			OutputPath: resolvePath(root, dto.Output),
		}
		if job.OutputPath == "" {
			job.OutputPath = filepath.Join(root, domain.DefaultOutputFile)
		}
		if err := job.Validate(); err != nil {
			return nil, zerr.With(err, "index", i)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no merge jobs given"), "path", configPath)
		}
		return zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	document, err := toDocument(configFile)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", configPath)
	}
	if validErr := validateDocument(document); validErr != nil {
		return zerr.With(errors.Join(domain.ErrConfigInvalid, validErr), "path", configPath)
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if parseErr := dec.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.With(errors.Join(domain.ErrConfigParseFailed, parseErr), "path", configPath)
	}

	return nil
}

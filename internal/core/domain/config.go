package domain

import "go.trai.ch/zerr"

// MergeConfig describes one merge job: which manifests to read and where to write.
// It is built once by the driver and never mutated.
type MergeConfig struct {
	// BasePath is the manifest whose non-dependency fields are authoritative.
	BasePath string
	// ExtraPath is the overlay manifest.
	ExtraPath string
	// OutputPath is where the merged manifest is written.
	OutputPath string
}

// NewMergeConfig builds a MergeConfig from positional arguments
// <base> <extra> [output]. The output defaults to DefaultOutputFile.
func NewMergeConfig(args []string) (MergeConfig, error) {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return MergeConfig{}, ErrMissingArguments
	}
	cfg := MergeConfig{
		BasePath:   args[0],
		ExtraPath:  args[1],
		OutputPath: DefaultOutputFile,
	}
	if len(args) > 2 && args[2] != "" {
		cfg.OutputPath = args[2]
	}
	return cfg, nil
}

// Validate checks that both inputs are set.
func (c MergeConfig) Validate() error {
	if c.BasePath == "" || c.ExtraPath == "" {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidMergeJob, "invalid merge job"),
			"base", c.BasePath), "extra", c.ExtraPath)
	}
	return nil
}

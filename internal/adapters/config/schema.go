package config

// SupportedVersion is the config file version this loader understands.
const SupportedVersion = "1"

// Configfile represents the structure of the pkgmerge.yaml configuration file.
type Configfile struct {
	Version string      `yaml:"version"`
	Merges  []*MergeDTO `yaml:"merges"`
}

// MergeDTO represents one merge job in the configuration.
type MergeDTO struct {
	Base   string `yaml:"base"`
	Extra  string `yaml:"extra"`
	Output string `yaml:"output"`
}

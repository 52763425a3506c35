package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingArguments is returned when a merge is requested without a base or extra manifest.
	ErrMissingArguments = zerr.New("missing arguments, expected <base.json> <extra.json> [output.json]")

	// ErrManifestReadFailed is returned when a manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when a manifest file is not valid JSON.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestNotObject is returned when a manifest document is valid JSON but not an object.
	ErrManifestNotObject = zerr.New("manifest is not a JSON object")

	// ErrDependencyBlockNotObject is returned when a dependency block is neither an object nor null.
	ErrDependencyBlockNotObject = zerr.New("dependency block is not a JSON object")

	// ErrManifestMarshalFailed is returned when the merged manifest cannot be serialized.
	ErrManifestMarshalFailed = zerr.New("failed to marshal manifest")

	// ErrManifestWriteFailed is returned when the merged manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrOutputOutOfDate is returned in check mode when the output differs from the merge result.
	ErrOutputOutOfDate = zerr.New("output manifest is out of date")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file does not match the config schema.
	ErrConfigInvalid = zerr.New("config file does not match schema")

	// ErrConfigNotFound is returned when no arguments are given and no config file exists.
	ErrConfigNotFound = zerr.New("could not find pkgmerge.yaml")

	// ErrInvalidMergeJob is returned when a config file entry lacks a base or extra path.
	ErrInvalidMergeJob = zerr.New("merge job requires base and extra")

	// ErrNoMergeJobs is returned when a config file declares no merges.
	ErrNoMergeJobs = zerr.New("config file declares no merges")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrDigestFailed is returned when a file digest cannot be computed.
	ErrDigestFailed = zerr.New("failed to compute digest")
)

package domain

const (
	// ConfigFileName is the name of the merge configuration file.
	ConfigFileName = "pkgmerge.yaml"

	// DefaultOutputFile is the output manifest written when none is given.
	DefaultOutputFile = "package.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

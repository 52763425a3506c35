package ports

// Hasher defines the interface for computing content digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeHash returns the digest of data.
	ComputeHash(data []byte) string

	// ComputeFileHash returns the digest of the file at path.
	// It returns an empty string and no error if the file does not exist.
	ComputeFileHash(path string) (string, error)
}

package ports

import "go.trai.ch/pkgmerge/internal/core/domain"

// ManifestStore defines the interface for reading and writing manifest documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Load reads and parses the manifest at path.
	Load(path string) (*domain.Manifest, error)

	// Render serializes a manifest into its on-disk form.
	Render(m *domain.Manifest) ([]byte, error)

	// Save writes rendered manifest data to path.
	Save(path string, data []byte) error
}

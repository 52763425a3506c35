// Package fs implements manifest storage and content digests on the local filesystem.
package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/pkgmerge/internal/core/domain"
	"go.trai.ch/pkgmerge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

const indent = "  "

// Store reads and writes package manifests.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads and parses the manifest at path.
func (s *Store) Load(path string) (*domain.Manifest, error) {
	//nolint:gosec // Path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestReadFailed, err), "path", path)
	}

	m := domain.NewManifest()
	if err := json.Unmarshal(data, m); err != nil {
		if errors.Is(err, domain.ErrManifestNotObject) {
			return nil, zerr.With(zerr.Wrap(err, "invalid manifest"), "path", path)
		}
		return nil, zerr.With(errors.Join(domain.ErrManifestParseFailed, err), "path", path)
	}

	return m, nil
}

// Render serializes m with two-space indentation and a trailing newline.
func (s *Store) Render(m *domain.Manifest) ([]byte, error) {
	if m == nil {
		m = domain.NewManifest()
	}

	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, errors.Join(domain.ErrManifestMarshalFailed, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, errors.Join(domain.ErrManifestMarshalFailed, err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// Save writes data to path atomically, creating parent directories as needed.
// Readers never observe a partially written file.
func (s *Store) Save(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}
	committed = true

	return nil
}

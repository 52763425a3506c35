package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pkgmerge/internal/core/domain"
	"go.trai.ch/pkgmerge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of rendered manifests and files on disk.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeHash returns the hex digest of data.
func (h *Hasher) ComputeHash(data []byte) string {
	return format(xxhash.Sum64(data))
}

// ComputeFileHash returns the hex digest of the file at path.
// A missing file yields an empty digest and no error.
func (h *Hasher) ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(errors.Join(domain.ErrDigestFailed, err), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", zerr.With(errors.Join(domain.ErrDigestFailed, err), "path", path)
	}

	return format(digest.Sum64()), nil
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

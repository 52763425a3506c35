package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgmerge/internal/core/ports"
)

const (
	StoreNodeID  graft.ID = "adapter.fs.store"
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestStore, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}

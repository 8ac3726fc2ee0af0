package out

import (
	"context"

	"questlog/internal/modules/notify/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host launches a notifier binary and drives its RPC surface.
type Host interface {
	Describe(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Announce(ctx context.Context, manifest domain.Manifest, event domain.Event) error
}

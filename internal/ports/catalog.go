package ports

import (
	"context"

	"github.com/bmaertens/upkeep/internal/domain"
)

// NodeCatalog fetches the upstream Node.js release catalog, newest first.
type NodeCatalog interface {
	Releases(ctx context.Context) ([]domain.Release, error)
}

// DotnetCatalog fetches the upstream .NET releases index.
type DotnetCatalog interface {
	Channels(ctx context.Context) ([]domain.Channel, error)
}

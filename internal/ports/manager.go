package ports

import (
	"context"

	"github.com/bmaertens/upkeep/internal/domain"
)

// VersionManager wraps the external install/uninstall primitives for one
// runtime. Installed is read-only; only Install and Uninstall mutate the
// local environment.
type VersionManager interface {
	Installed(ctx context.Context) ([]domain.InstalledVersion, error)
	Install(ctx context.Context, v domain.Version) error
	Uninstall(ctx context.Context, removal domain.Removal) error
}

// NodeManager adds the default-alias handling nvm provides on top of the
// shared manager primitives.
type NodeManager interface {
	VersionManager
	SetDefault(ctx context.Context, v domain.Version) error
	Active(ctx context.Context) (domain.Version, error)
}

// SDKManager is the .NET SDK flavor; BinDir reports the managed dotnet
// root so the profile configurator can export it.
type SDKManager interface {
	VersionManager
	BinDir() string
}

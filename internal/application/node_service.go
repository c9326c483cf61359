package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bmaertens/upkeep/internal/domain"
	"github.com/bmaertens/upkeep/internal/ports"
)

// NodeService runs the Node.js resolve/reconcile/execute pass.
type NodeService struct {
	catalog ports.NodeCatalog
	manager ports.NodeManager
	logger  zerolog.Logger
}

func NewNodeService(catalog ports.NodeCatalog, manager ports.NodeManager, logger zerolog.Logger) *NodeService {
	return &NodeService{
		catalog: catalog,
		manager: manager,
		logger:  logger.With().Str("runtime", "node").Logger(),
	}
}

// Plan resolves the supported set and diffs it against the installed set
// without mutating anything.
func (s *NodeService) Plan(ctx context.Context) (Outcome, error) {
	releases, err := s.catalog.Releases(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetch node release catalog: %w", err)
	}

	supported, warnings, err := ResolveNode(releases)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve supported node versions: %w", err)
	}

	installed, err := s.manager.Installed(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("list installed node versions: %w", err)
	}

	return Outcome{
		Runtime:   "node",
		Supported: supported,
		Installed: installed,
		Plan:      ReconcileNode(supported, installed),
		Default:   supported.Default,
		Warnings:  warnings,
	}, nil
}

// Sync applies the plan. Installs fail fast; after a successful install
// phase the default alias is switched to the resolved Current and verified
// against the active runtime before removals run.
func (s *NodeService) Sync(ctx context.Context, opts SyncOptions) (Outcome, error) {
	outcome, err := s.Plan(ctx)
	if err != nil {
		return Outcome{}, err
	}
	outcome.DryRun = opts.DryRun

	if opts.DryRun {
		s.logger.Info().
			Int("installs", len(outcome.Plan.Installs)).
			Int("removals", len(outcome.Plan.Removals)).
			Msg("dry-run, no changes applied")
		return outcome, nil
	}

	installCount := 0
	for _, version := range outcome.Plan.Installs {
		s.logger.Info().Str("version", version.String()).Msg("installing")
		if err := s.manager.Install(ctx, version); err != nil {
			return outcome, fmt.Errorf("install node %s: %w", version, err)
		}
		installCount++
	}
	outcome.InstalledCount = installCount

	if err := s.switchDefault(ctx, outcome.Default); err != nil {
		return outcome, err
	}

	if opts.Cleanup {
		_, removed, warnings, err := applyPlan(ctx, s.manager, domain.Plan{Removals: outcome.Plan.Removals}, true, s.logger)
		if err != nil {
			return outcome, err
		}
		outcome.RemovedCount = removed
		outcome.Warnings = append(outcome.Warnings, warnings...)
	}

	return outcome, nil
}

// switchDefault points the version manager's default alias at the resolved
// Current and re-queries the active runtime to confirm the switch took.
func (s *NodeService) switchDefault(ctx context.Context, want domain.Version) error {
	if want.IsZero() {
		return nil
	}

	if err := s.manager.SetDefault(ctx, want); err != nil {
		return fmt.Errorf("set default node version %s: %w", want, err)
	}

	active, err := s.manager.Active(ctx)
	if err != nil {
		return fmt.Errorf("verify active node version: %w", err)
	}
	if active != want {
		return fmt.Errorf("%w: want %s, active %s", domain.ErrDefaultMismatch, want, active)
	}

	s.logger.Info().Str("version", want.String()).Msg("default version verified")
	return nil
}

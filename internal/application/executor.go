package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bmaertens/upkeep/internal/domain"
	"github.com/bmaertens/upkeep/internal/ports"
)

// applyPlan drives the external install/uninstall primitives for one plan.
// The install phase runs first, in list order, and fails fast: the first
// install error aborts the run before any removal happens. Removals are
// best-effort cleanup; each failure is logged and collected as a warning
// but never stops the remaining removals.
func applyPlan(ctx context.Context, manager ports.VersionManager, plan domain.Plan, cleanup bool, logger zerolog.Logger) (installed, removed int, warnings []string, err error) {
	for _, version := range plan.Installs {
		logger.Info().Str("version", version.String()).Msg("installing")
		if err := manager.Install(ctx, version); err != nil {
			return installed, removed, warnings, fmt.Errorf("install %s: %w", version, err)
		}
		installed++
	}

	if !cleanup {
		if len(plan.Removals) > 0 {
			logger.Info().Int("count", len(plan.Removals)).Msg("cleanup disabled, keeping removable versions")
		}
		return installed, removed, warnings, nil
	}

	for _, removal := range plan.Removals {
		logger.Info().
			Str("version", removal.Version.String()).
			Str("reason", string(removal.Reason)).
			Msg("removing")
		if err := manager.Uninstall(ctx, removal); err != nil {
			warning := fmt.Sprintf("remove %s: %v", removal.Version, err)
			logger.Error().Str("version", removal.Version.String()).Err(err).Msg("removal failed, continuing")
			warnings = append(warnings, warning)
			continue
		}
		removed++
	}

	return installed, removed, warnings, nil
}

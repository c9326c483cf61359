package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bmaertens/upkeep/internal/ports"
)

// DotnetService runs the .NET SDK resolve/reconcile/execute pass and, when
// enabled, persists the managed dotnet root into the shell profile.
type DotnetService struct {
	catalog ports.DotnetCatalog
	manager ports.SDKManager
	profile ports.ProfileUpdater
	logger  zerolog.Logger
}

func NewDotnetService(catalog ports.DotnetCatalog, manager ports.SDKManager, profile ports.ProfileUpdater, logger zerolog.Logger) *DotnetService {
	return &DotnetService{
		catalog: catalog,
		manager: manager,
		profile: profile,
		logger:  logger.With().Str("runtime", "dotnet").Logger(),
	}
}

// Plan resolves the supported SDK set and diffs it against the installed
// SDKs without mutating anything.
func (s *DotnetService) Plan(ctx context.Context) (Outcome, error) {
	channels, err := s.catalog.Channels(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetch dotnet releases index: %w", err)
	}

	supported, warnings, err := ResolveDotnet(channels)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve supported dotnet sdks: %w", err)
	}

	installed, err := s.manager.Installed(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("list installed dotnet sdks: %w", err)
	}

	return Outcome{
		Runtime:   "dotnet",
		Supported: supported,
		Installed: installed,
		Plan:      ReconcileDotnet(supported, installed),
		Warnings:  warnings,
	}, nil
}

// Sync applies the plan and then ensures the dotnet root is exported in the
// shell profile. Profile trouble is informational, never fatal.
func (s *DotnetService) Sync(ctx context.Context, opts SyncOptions) (Outcome, error) {
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

	installed, removed, warnings, err := applyPlan(ctx, s.manager, outcome.Plan, opts.Cleanup, s.logger)
	outcome.InstalledCount = installed
	outcome.RemovedCount = removed
	outcome.Warnings = append(outcome.Warnings, warnings...)
	if err != nil {
		return outcome, err
	}

	if opts.UpdateProfile {
		result, err := s.profile.EnsurePath(s.manager.BinDir())
		if err != nil {
			// Degrade to a manual instruction; a missing or read-only
			// profile must not fail an otherwise successful sync.
			outcome.Warnings = append(outcome.Warnings, fmt.Sprintf(
				"could not update shell profile (%v); add %q to PATH manually", err, s.manager.BinDir()))
			s.logger.Warn().Err(err).Msg("shell profile not updated")
		} else {
			outcome.Profile = &result
			s.logger.Info().Str("state", string(result.State)).Str("profile", result.Profile).Msg("shell profile checked")
		}
	}

	return outcome, nil
}

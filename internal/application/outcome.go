package application

import (
	"github.com/bmaertens/upkeep/internal/domain"
	"github.com/bmaertens/upkeep/internal/ports"
)

// SyncOptions toggles the mutating phases of a run.
type SyncOptions struct {
	// DryRun resolves and reports but performs zero external mutation.
	DryRun bool
	// Cleanup enables the removal phase (.NET --no-cleanup clears it).
	Cleanup bool
	// UpdateProfile enables shell-profile persistence (.NET only).
	UpdateProfile bool
}

// Outcome is the full report of one resolve/reconcile/execute pass.
type Outcome struct {
	Runtime   string
	Supported domain.SupportedSet
	Installed []domain.InstalledVersion
	Plan      domain.Plan
	DryRun    bool

	InstalledCount int
	RemovedCount   int
	Default        domain.Version
	Profile        *ports.ProfileResult
	Warnings       []string
}

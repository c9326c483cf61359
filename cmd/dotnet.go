package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmaertens/upkeep/internal/adapters/catalog/dotnet"
	"github.com/bmaertens/upkeep/internal/adapters/manager/dotnetsdk"
	"github.com/bmaertens/upkeep/internal/adapters/profile"
	"github.com/bmaertens/upkeep/internal/application"
)

func newDotnetCmd(opts *globalOptions) *cobra.Command {
	var (
		noCleanup       bool
		noProfileUpdate bool
		dotnetRoot      string
	)

	cmd := &cobra.Command{
		Use:   "dotnet",
		Short: "Synchronize installed .NET SDKs with the supported set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDotnetSync(cmd, opts, dotnetRoot, !noCleanup, !noProfileUpdate)
		},
	}

	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Keep unsupported and superseded SDKs installed")
	cmd.Flags().BoolVar(&noProfileUpdate, "no-profile-update", false, "Do not touch the shell profile")
	cmd.Flags().StringVar(&dotnetRoot, "dotnet-root", "", "SDK installation root (default $DOTNET_ROOT or ~/.dotnet)")

	return cmd
}

func runDotnetSync(cmd *cobra.Command, opts *globalOptions, root string, cleanup, updateProfile bool) (runErr error) {
	app, err := wireApp(opts)
	if err != nil {
		return err
	}
	defer func() { app.shutdown(runErr) }()

	if root == "" {
		root = app.cfg.DotnetRoot
	}

	manager, err := dotnetsdk.NewManager(root, app.runner, app.httpClient, app.cfg.DotnetInstallURL)
	if err != nil {
		return err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	updater, err := profile.NewUpdater(homeDir, os.Getenv("SHELL"))
	if err != nil {
		return err
	}

	catalog := dotnet.NewClient(app.httpClient, app.cfg.DotnetIndexURL)
	service := application.NewDotnetService(catalog, manager, updater, app.logger)

	var outcome application.Outcome
	work := func(ctx context.Context) error {
		var syncErr error
		outcome, syncErr = service.Sync(ctx, application.SyncOptions{
			DryRun:        opts.dryRun,
			Cleanup:       cleanup,
			UpdateProfile: updateProfile,
		})
		return syncErr
	}

	if err := runSyncWork(cmd, opts, "Syncing .NET SDKs...", work); err != nil {
		return err
	}

	return writeOutcome(cmd, opts, outcome)
}

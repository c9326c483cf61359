package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bmaertens/upkeep/internal/adapters/catalog/nodejs"
	"github.com/bmaertens/upkeep/internal/adapters/manager/nvm"
	"github.com/bmaertens/upkeep/internal/application"
)

func newNodeCmd(opts *globalOptions) *cobra.Command {
	var nvmDir string

	cmd := &cobra.Command{
		Use:   "node",
		Short: "Synchronize installed Node.js versions with the supported set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNodeSync(cmd, opts, nvmDir)
		},
	}

	cmd.Flags().StringVar(&nvmDir, "nvm-dir", "", "nvm installation directory (default $NVM_DIR or ~/.nvm)")

	return cmd
}

func runNodeSync(cmd *cobra.Command, opts *globalOptions, nvmDir string) (runErr error) {
	app, err := wireApp(opts)
	if err != nil {
		return err
	}
	defer func() { app.shutdown(runErr) }()

	if nvmDir == "" {
		nvmDir = app.cfg.NodeNvmDir
	}

	manager, err := nvm.NewManager(nvmDir, app.runner)
	if err != nil {
		return err
	}

	catalog := nodejs.NewClient(app.httpClient, app.cfg.NodeIndexURL)
	service := application.NewNodeService(catalog, manager, app.logger)

	var outcome application.Outcome
	work := func(ctx context.Context) error {
		var syncErr error
		outcome, syncErr = service.Sync(ctx, application.SyncOptions{
			DryRun:  opts.dryRun,
			Cleanup: true,
		})
		return syncErr
	}

	if err := runSyncWork(cmd, opts, "Syncing Node.js versions...", work); err != nil {
		return err
	}

	return writeOutcome(cmd, opts, outcome)
}

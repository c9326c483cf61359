package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	planrender "github.com/bmaertens/upkeep/internal/adapters/render/plan"
	"github.com/bmaertens/upkeep/internal/application"
)

// runSyncWork executes the sync closure, behind a terminal spinner unless
// quiet or JSON output is requested.
func runSyncWork(cmd *cobra.Command, opts *globalOptions, label string, work func(context.Context) error) error {
	if opts.asJSON || opts.quiet {
		return work(cmd.Context())
	}
	return runSyncSpinner(cmd.Context(), cmd.ErrOrStderr(), label, work)
}

func writeOutcome(cmd *cobra.Command, opts *globalOptions, outcome application.Outcome) error {
	if opts.asJSON {
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("encode outcome: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	if opts.quiet {
		return nil
	}

	rendered, err := planrender.Render(outcome, planrender.RenderOptions{Applied: !outcome.DryRun})
	if err != nil {
		return fmt.Errorf("render outcome: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

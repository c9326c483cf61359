package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmaertens/upkeep/internal/version"
)

type globalOptions struct {
	quiet   bool
	dryRun  bool
	logFile string
	asJSON  bool
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "upkeep",
		Short:         "Keep local Node.js and .NET SDK installations on supported versions",
		Long:          "upkeep resolves the upstream supported versions of Node.js and the .NET SDK, compares them with what is installed locally, installs what is missing and removes what is unsupported or superseded.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress console output below warning level")
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "Print the plan without installing or removing anything")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log file path (default from config)")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\nsee '%s --help' for usage", err, c.CommandPath())
	})

	rootCmd.AddCommand(
		newVersionCmd(),
		newNodeCmd(opts),
		newDotnetCmd(opts),
		newConfigCmd(),
	)

	return rootCmd
}

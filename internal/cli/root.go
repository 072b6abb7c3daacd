package cli

import (
	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The logger is attached to the command context in PersistentPreRunE, so
// helpers can reach it through loggerFromContext. main.go wraps that hook to
// apply --verbose first.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "biasplot compares LLM occupational profiles against labor statistics",
		Long: `biasplot builds comparative dot plots of how LLM-generated occupational
profiles differ from Bureau of Labor Statistics demographics. It also
generates, converts and aggregates the profiles the plots are built from.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.plotCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.averagesCommand())
	root.AddCommand(c.labelsCommand())
	root.AddCommand(c.aggregateCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	registerFlagCompletions(root)

	return root
}

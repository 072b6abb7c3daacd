package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/align"
	"github.com/genai-bias/biasplot/pkg/config"
	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/generate"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for biasplot. Besides commands and
flags, enumerated flag values (--kind, --panels, --format, --provider, ...)
are completed.

  bash:        source <(biasplot completion bash)
  zsh:         biasplot completion zsh > "${fpath[1]}/_biasplot"
  fish:        biasplot completion fish > ~/.config/fish/completions/biasplot.fish
  powershell:  biasplot completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// flagValues lists the accepted values of enumerated flags, by flag name.
func flagValues() map[string][]string {
	groups := make([]string, 0, len(dataset.AllGroups)+1)
	for _, g := range dataset.AllGroups {
		groups = append(groups, string(g))
	}
	groups = append(groups, string(dataset.Men))

	return map[string][]string{
		"kind":           {dataset.Differences.String(), dataset.Percentages.String()},
		"panels":         groups,
		"groups":         groups,
		"reference":      groups,
		"policy":         {string(align.PolicyIntersect), string(align.PolicyUnion)},
		"direction":      {string(align.Descending), string(align.Ascending)},
		"labels":         {config.LabelsAuto, config.LabelsCurated, config.LabelsNice},
		"label-mismatch": {config.LabelMismatchError, config.LabelMismatchWarn},
		"format":         {config.FormatSVG, config.FormatPDF, config.FormatPNG, config.FormatCSV, config.FormatJSON},
		"style":          {"simple", "mono"},
		"provider":       generate.Providers(),
	}
}

// registerFlagCompletions attaches value completion to every enumerated
// flag of cmd and its subcommands.
func registerFlagCompletions(cmd *cobra.Command) {
	values := flagValues()
	for name, vals := range values {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
	}
	for _, sub := range cmd.Commands() {
		registerFlagCompletions(sub)
	}
}

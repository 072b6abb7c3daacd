package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/profile"
)

// aggregateOpts holds the command-line flags for the aggregate command.
type aggregateOpts struct {
	name   string // source name for the table
	suffix string // file name suffix to strip from occupation keys
	output string // output CSV
}

// aggregateCommand creates the aggregate command, which turns a directory
// of per-occupation profile files into a percentages table.
func (c *CLI) aggregateCommand() *cobra.Command {
	var opts aggregateOpts

	cmd := &cobra.Command{
		Use:   "aggregate <dir>",
		Short: "Summarize profile files into a percentages table",
		Long: `Read every <occupation>profiles_<provider>.csv in a directory and write one
row per occupation with the share of women and of each race group.

  biasplot aggregate profiles/chatgpt --name ChatGPT -o chatgpt_pct.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAggregate(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "source name (default: directory name)")
	cmd.Flags().StringVar(&opts.suffix, "suffix", "", "file name suffix to strip (default: profiles_<provider>)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output CSV (default: <name>_percentages.csv)")

	return cmd
}

func (c *CLI) runAggregate(cmd *cobra.Command, dir string, opts *aggregateOpts) error {
	logger := loggerFromContext(cmd.Context())

	name := opts.name
	if name == "" {
		name = filepath.Base(filepath.Clean(dir))
	}
	output := opts.output
	if output == "" {
		output = dataset.SquashKey(name) + "_percentages.csv"
	}

	prog := newProgress(logger)
	table, warnings, err := profile.AggregateDir(dir, profile.AggregateOptions{Name: name, Suffix: opts.suffix})
	if err != nil {
		return err
	}
	logWarnings(logger, warnings)
	if table.Len() == 0 {
		return fmt.Errorf("no profile files found in %s", dir)
	}

	err = writeTables(output, []*dataset.SourceTable{table}, dataset.WriteOptions{
		Kind:     dataset.Percentages,
		Decimals: profile.Decimals,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Aggregated %d occupations", table.Len()))

	printWarnings(warnings)
	printSuccess("Aggregated %d occupations for %s", table.Len(), name)
	printFile(output)
	printNewline()
	printNextStep("Compare against BLS", fmt.Sprintf("biasplot diff --baseline bls.csv -s %s=%s", name, output))
	return nil
}

package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/config"
	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/normalize"
	"github.com/genai-bias/biasplot/pkg/pipeline"
)

// diffDecimals is the rounding of written difference tables.
const diffDecimals = 2

// diffOpts holds the command-line flags for the diff command.
type diffOpts struct {
	configPath string   // TOML chart config providing sources and baseline
	sources    []string // NAME=PATH percentage tables
	baseline   string   // BLS baseline table
	groups     []string // groups to compute
	output     string   // output CSV
	split      bool     // one file per source instead of a combined table
}

// diffCommand creates the diff command for computing differences from the
// baseline.
func (c *CLI) diffCommand() *cobra.Command {
	var opts diffOpts

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compute model-minus-BLS differences from percentage tables",
		Long: `Compute source minus baseline for every occupation and group. Every
occupation of every source must be present in the baseline.

  biasplot diff --baseline bls.csv -s ChatGPT=chatgpt_pct.csv -o diffs.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("source") {
				if cfg.Sources, err = parseSources(opts.sources); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("baseline") {
				cfg.Baseline = opts.baseline
			}
			cfg.Kind = dataset.Percentages.String()
			cfg.Panels = opts.groups
			return c.runDiff(cmd.Context(), cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "chart config file (TOML)")
	cmd.Flags().StringArrayVarP(&opts.sources, "source", "s", nil, "percentage table as NAME=PATH (repeatable)")
	cmd.Flags().StringVar(&opts.baseline, "baseline", "", "BLS baseline table")
	cmd.Flags().StringSliceVar(&opts.groups, "groups", []string{"Women", "White", "Black", "Asian", "Hispanic"}, "groups to compute")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "differences_vs_bls.csv", "output CSV (with --split, a directory)")
	cmd.Flags().BoolVar(&opts.split, "split", false, "write one <source>_vs_bls.csv per source")

	return cmd
}

func (c *CLI) runDiff(ctx context.Context, cfg config.Config, opts *diffOpts) error {
	logger := loggerFromContext(ctx)
	if err := cfg.Validate(); err != nil {
		return err
	}
	groups, err := cfg.Groups()
	if err != nil {
		return err
	}

	in, err := pipeline.Load(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := normalize.Normalize(in.Tables, in.Baseline, groups)
	if err != nil {
		return err
	}
	logWarnings(logger, res.Warnings)

	wopts := dataset.WriteOptions{
		Kind:       dataset.Differences,
		Groups:     groups,
		Decimals:   diffDecimals,
		WithSource: true,
	}
	tables := normalize.ToTables(res.Records)
	var paths []string
	if opts.split {
		dir := opts.output
		if strings.EqualFold(filepath.Ext(dir), ".csv") {
			dir = filepath.Dir(dir)
		}
		for _, t := range tables {
			path := filepath.Join(dir, dataset.SquashKey(t.Name)+"_vs_bls.csv")
			if err := writeTables(path, []*dataset.SourceTable{t}, wopts); err != nil {
				return err
			}
			paths = append(paths, path)
		}
	} else {
		if err := writeTables(opts.output, tables, wopts); err != nil {
			return err
		}
		paths = append(paths, opts.output)
	}

	printWarnings(res.Warnings)
	printSuccess("Computed differences for %d source(s)", len(tables))
	for _, p := range paths {
		printFile(p)
	}
	if opts.split && len(paths) > 0 {
		printNewline()
		printNextStep("Plot them", fmt.Sprintf("biasplot plot -s %q", tables[0].Name+"="+paths[0]))
	}
	return nil
}

func writeTables(path string, tables []*dataset.SourceTable, opts dataset.WriteOptions) error {
	var buf bytes.Buffer
	if err := dataset.WriteTables(&buf, tables, opts); err != nil {
		return err
	}
	return writeOutput(path, buf.Bytes())
}

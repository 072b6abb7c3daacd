package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/config"
)

// chartFlags are the data-selection flags shared by plot, labels and
// averages. Each overrides the config file value only when given.
type chartFlags struct {
	configPath    string   // TOML chart config
	sources       []string // NAME=PATH source tables
	baseline      string   // BLS baseline table
	kind          string   // "differences" or "percentages"
	panels        []string // groups to plot
	policy        string   // "intersect" or "union"
	reference     string   // group used for ordering
	direction     string   // "descending" or "ascending"
	labels        string   // "auto", "curated" or "nice"
	labelsFile    string   // key,label dictionary
	labelMismatch string   // "error" or "warn"
	noCache       bool     // bypass the artifact cache
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "chart config file (TOML)")
	cmd.Flags().StringArrayVarP(&f.sources, "source", "s", nil, "source table as NAME=PATH (repeatable)")
	cmd.Flags().StringVar(&f.baseline, "baseline", "", "BLS baseline table")
	cmd.Flags().StringVar(&f.kind, "kind", "", "input kind: differences (default), percentages")
	cmd.Flags().StringSliceVar(&f.panels, "panels", nil, "groups to plot (comma-separated)")
	cmd.Flags().StringVar(&f.policy, "policy", "", "occupation policy: intersect (default), union")
	cmd.Flags().StringVar(&f.reference, "reference", "", "group used to order occupations (default White)")
	cmd.Flags().StringVar(&f.direction, "direction", "", "ordering: descending (default), ascending")
	cmd.Flags().StringVar(&f.labels, "labels", "", "label mode: auto (default), curated, nice")
	cmd.Flags().StringVar(&f.labelsFile, "labels-file", "", "CSV dictionary of occupation labels")
	cmd.Flags().StringVar(&f.labelMismatch, "label-mismatch", "", "curated label count mismatch: error (default), warn")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
}

// config loads the config file and applies the flags given on cmd.
func (f *chartFlags) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return cfg, err
	}
	changed := cmd.Flags().Changed
	if changed("source") {
		if cfg.Sources, err = parseSources(f.sources); err != nil {
			return cfg, err
		}
	}
	setString(changed("baseline"), &cfg.Baseline, f.baseline)
	setString(changed("kind"), &cfg.Kind, f.kind)
	setString(changed("policy"), &cfg.Policy, f.policy)
	setString(changed("reference"), &cfg.ReferenceGroup, f.reference)
	setString(changed("direction"), &cfg.Direction, f.direction)
	setString(changed("labels"), &cfg.Labels, f.labels)
	setString(changed("labels-file"), &cfg.LabelsFile, f.labelsFile)
	setString(changed("label-mismatch"), &cfg.LabelMismatch, f.labelMismatch)
	if changed("panels") {
		cfg.Panels = f.panels
	}
	return cfg, nil
}

func setString(changed bool, dst *string, v string) {
	if changed {
		*dst = v
	}
}

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	chartFlags
	output     string  // output directory
	name       string  // output file stem
	formats    string  // comma-separated output formats
	title      string  // figure title
	xlabel     string  // x-axis label
	style      string  // marker style
	tolerance  float64 // overlap tolerance in points
	baseUnit   float64 // vertical offset step in row units
	xmin       float64 // x-axis lower bound
	xmax       float64 // x-axis upper bound
	noAverages bool    // skip the averages-only figure
}

// plotCommand creates the plot command for rendering the dot plot.
func (c *CLI) plotCommand() *cobra.Command {
	var opts plotOpts

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the comparative dot plot",
		Long: `Render one dot-plot panel per demographic group, with one row per
occupation and one marker per model. Markers closer than the tolerance are
spread vertically so none hide each other.

Sources come from a TOML config (-c) or from --source flags:

  biasplot plot -s ChatGPT=chatgpt.csv -s Gemini=gemini.csv -f svg,png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.plotConfig(cmd)
			if err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), cfg, &opts.chartFlags)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "output file stem (default dotplot)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), pdf, png, csv, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "figure title")
	cmd.Flags().StringVar(&opts.xlabel, "x-label", "", "x-axis label")
	cmd.Flags().StringVar(&opts.style, "style", "", "marker style: simple (default), mono")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "overlap tolerance in percentage points (default 3)")
	cmd.Flags().Float64Var(&opts.baseUnit, "base-unit", 0, "vertical offset between overlapping markers (default 0.18)")
	cmd.Flags().Float64Var(&opts.xmin, "x-min", 0, "x-axis minimum (default -100)")
	cmd.Flags().Float64Var(&opts.xmax, "x-max", 0, "x-axis maximum (default 100)")
	cmd.Flags().BoolVar(&opts.noAverages, "no-averages", false, "skip the averages-only figure")

	return cmd
}

func (o *plotOpts) plotConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return cfg, err
	}
	changed := cmd.Flags().Changed
	setString(changed("output"), &cfg.OutputDir, o.output)
	setString(changed("name"), &cfg.OutputName, o.name)
	setString(changed("title"), &cfg.Title, o.title)
	setString(changed("x-label"), &cfg.XLabel, o.xlabel)
	setString(changed("style"), &cfg.Style, o.style)
	if changed("format") {
		cfg.Formats = parseFormats(o.formats)
	}
	if changed("tolerance") {
		cfg.Tolerance = o.tolerance
	}
	if changed("base-unit") {
		cfg.BaseUnit = o.baseUnit
	}
	if changed("x-min") {
		cfg.XMin = o.xmin
	}
	if changed("x-max") {
		cfg.XMax = o.xmax
	}
	if o.noAverages {
		cfg.Averages = false
	}
	return cfg, nil
}

// runPlot executes the chart pipeline and writes every artifact to the
// output directory.
func (c *CLI) runPlot(ctx context.Context, cfg config.Config, flags *chartFlags) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, cfg)
	if err != nil {
		return err
	}

	dir := cfg.Resolve(cfg.OutputDir)
	var paths []string
	for _, a := range result.Artifacts {
		path := filepath.Join(dir, a.Name)
		if err := writeOutput(path, a.Data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Plotted %d occupations", result.Stats.Occupations))

	printNewline()
	printWarnings(result.Warnings)
	printSuccess("Rendered %d file(s)", len(paths))
	printStats(result.Stats.Sources, result.Stats.Occupations, result.CacheHits(), len(result.Artifacts))
	for _, p := range paths {
		printFile(p)
	}
	printNewline()
	printNextStep("Per-group averages", "biasplot averages "+flags.hint())
	return nil
}

// hint repeats the data selection for a follow-up command.
func (f *chartFlags) hint() string {
	if f.configPath != "" {
		return "-c " + f.configPath
	}
	parts := make([]string, 0, len(f.sources))
	for _, s := range f.sources {
		parts = append(parts, "-s "+s)
	}
	return strings.Join(parts, " ")
}

package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/config"
	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/normalize"
)

// averagesOpts holds the command-line flags for the averages command.
type averagesOpts struct {
	chartFlags
	output string // CSV of (group, source, average, n)
	across string // CSV of per-occupation means across sources
}

// averagesCommand creates the averages command.
func (c *CLI) averagesCommand() *cobra.Command {
	var opts averagesOpts

	cmd := &cobra.Command{
		Use:   "averages",
		Short: "Report the average difference per group and model",
		Long: `Report, for every plotted group and model, the mean difference from the
baseline over the plotted occupations. These are the values of the
"Average" row of the dot plot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return c.runAverages(cmd.Context(), cfg, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the averages as CSV")
	cmd.Flags().StringVar(&opts.across, "across", "", "write per-occupation means across models as CSV")

	return cmd
}

func (c *CLI) runAverages(ctx context.Context, cfg config.Config, opts *averagesOpts) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	result, err := runner.Prepare(ctx, cfg)
	if err != nil {
		return err
	}
	groups, _ := cfg.Groups()
	sources := dataset.Sources(result.Records)

	byKey := make(map[dataset.Group]map[string]dataset.Value, len(groups))
	for _, a := range result.Averages {
		if byKey[a.Group] == nil {
			byKey[a.Group] = make(map[string]dataset.Value)
		}
		byKey[a.Group][a.Source] = a.Value
	}
	headers := append([]string{"Group"}, sources...)
	rows := make([][]string, 0, len(groups))
	numeric := make([]int, 0, len(sources))
	for i := range sources {
		numeric = append(numeric, i+1)
	}
	for _, g := range groups {
		row := []string{string(g)}
		for _, s := range sources {
			row = append(row, formatSigned(byKey[g][s], 1))
		}
		rows = append(rows, row)
	}

	printWarnings(result.Warnings)
	printInfo("Average difference from BLS over %d occupations", len(result.Index))
	fmt.Println(renderTable(headers, rows, numeric...))

	if opts.output != "" {
		data, err := averagesCSV(result.Averages)
		if err != nil {
			return err
		}
		if err := writeOutput(opts.output, data); err != nil {
			return err
		}
		printFile(opts.output)
	}
	if opts.across != "" {
		t := normalize.AverageAcross(result.Records, groups, "Average")
		// Keep only the plotted occupations, in plot order.
		kept := dataset.NewSourceTable(t.Name)
		for _, k := range result.Index {
			if row, ok := t.Row(k); ok {
				if err := kept.Add(k, row.Values); err != nil {
					return err
				}
			}
		}
		err := writeTables(opts.across, []*dataset.SourceTable{kept}, dataset.WriteOptions{
			Kind:     dataset.Differences,
			Groups:   groups,
			Decimals: 1,
		})
		if err != nil {
			return err
		}
		printFile(opts.across)
	}
	return nil
}

func averagesCSV(avgs []normalize.Average) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"group", dataset.SourceColumn, "average", "n"}); err != nil {
		return nil, err
	}
	for _, a := range avgs {
		rec := []string{string(a.Group), a.Source, a.Value.Format(4), strconv.Itoa(a.N)}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/align"
	"github.com/genai-bias/biasplot/pkg/config"
	"github.com/genai-bias/biasplot/pkg/dataset"
)

// labelsOpts holds the command-line flags for the labels command.
type labelsOpts struct {
	chartFlags
	output string // key,label CSV usable as --labels-file
}

// labelsCommand creates the labels command, which shows the plotted
// occupations in plot order with their display labels.
func (c *CLI) labelsCommand() *cobra.Command {
	var opts labelsOpts

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Show the plotted occupations, their order and labels",
		Long: `Show the occupations that would be plotted, top to bottom, with the label
each one gets and the mean of the reference group used to order them.

Use this to check a curated label list before plotting, or write the
mapping with -o and edit it into a labels file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return c.runLabels(cmd.Context(), cfg, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the key,label mapping as CSV")

	return cmd
}

func (c *CLI) runLabels(ctx context.Context, cfg config.Config, opts *labelsOpts) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	result, err := runner.Prepare(ctx, cfg)
	if err != nil {
		return err
	}

	ref := cfg.Reference()
	means := align.ReferenceMeans(result.Index, result.Records, ref)
	rows := make([][]string, 0, len(result.Index))
	for i, k := range result.Index {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			k,
			result.Labels.Label(k),
			formatSigned(means[k], 1),
		})
	}

	printWarnings(result.Warnings)
	printInfo("%d occupations, ordered by %s (%s)", len(result.Index), ref, cfg.Direction)
	fmt.Println(renderTable([]string{"#", "Key", "Label", string(ref)}, rows, 0, 3))

	if opts.output != "" {
		data, err := labelsCSV(result.Index, result.Labels)
		if err != nil {
			return err
		}
		if err := writeOutput(opts.output, data); err != nil {
			return err
		}
		printFile(opts.output)
		printNewline()
		printNextStep("Plot with these labels", strings.TrimSpace("biasplot plot --labels-file "+opts.output+" "+opts.hint()))
	}
	return nil
}

func labelsCSV(keys []string, labels align.LabelMap) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{dataset.KeyColumn, "label"}); err != nil {
		return nil, err
	}
	for _, k := range keys {
		if err := w.Write([]string{k, labels.Label(k)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

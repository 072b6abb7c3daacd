package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
	"github.com/genai-bias/biasplot/pkg/generate"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	provider    string   // LLM provider name
	model       string   // model override
	count       int      // profiles per occupation
	occupations []string // occupations to request
	from        string   // baseline CSV whose search terms are requested
	output      string   // output directory
	runID       string   // resume an earlier run
	noCache     bool     // disable the reply cache
}

// generateCommand creates the generate command for requesting synthetic
// profiles from an LLM provider.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Request occupational profiles from an LLM",
		Long: fmt.Sprintf(`Ask an LLM for synthetic profiles of people in each occupation and append
the parsed replies to <occupation>profiles_<provider>.csv files.

Occupations are BLS search terms, given with --occupation or read from the
search-term column of a baseline table with --from. Requests run one at a time. Replies are cached per run, so an interrupted
run can be resumed with --run-id without paying for completed requests.

Providers: %s (API key from OPENAI_API_KEY or GEMINI_API_KEY)`, strings.Join(generate.Providers(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.provider, "provider", "p", generate.OpenAIName, "LLM provider")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "model (default: provider default)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 100, "profiles per occupation")
	cmd.Flags().StringArrayVar(&opts.occupations, "occupation", nil, "occupation to request (repeatable)")
	cmd.Flags().StringVar(&opts.from, "from", "", "request every search term of a BLS baseline table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "profiles", "output directory")
	cmd.Flags().StringVar(&opts.runID, "run-id", "", "resume the run with this id")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the reply cache")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	occs, err := occupations(opts.occupations, opts.from)
	if err != nil {
		return err
	}
	provider, err := generate.New(ctx, opts.provider, generate.Config{Model: opts.model})
	if err != nil {
		return err
	}
	cache, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer cache.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Requesting profiles from %s...", provider.Model()))
	spinner.Start()

	runner := generate.NewRunner(provider, cache, nil, logger)
	stats, err := runner.Run(ctx, generate.Options{
		Occupations: occs,
		Count:       opts.count,
		OutDir:      opts.output,
		RunID:       opts.runID,
		OnProgress: func(done, total int) {
			spinner.Update(fmt.Sprintf("Requesting profiles from %s... %d/%d", provider.Model(), done, total))
		},
	})
	spinner.Stop()
	if err != nil {
		if stats.RunID != "" {
			printNextStep("Resume", fmt.Sprintf("biasplot generate -p %s --run-id %s", provider.Name(), stats.RunID))
		}
		return err
	}

	printSuccess("Generated %d profiles for %d occupations", stats.Written, len(occs))
	printKeyValue("Run", stats.RunID)
	printKeyValue("Cached", fmt.Sprint(stats.Cached))
	if stats.Failed > 0 || stats.Unparsable > 0 {
		printWarning("%d requests failed, %d replies could not be parsed", stats.Failed, stats.Unparsable)
		printNextStep("Retry the failed requests", fmt.Sprintf("biasplot generate -p %s --run-id %s", provider.Name(), stats.RunID))
	}
	printKeyValue("Directory", opts.output)
	printNewline()
	printNextStep("Aggregate them", "biasplot aggregate "+opts.output)
	return nil
}

// occupations builds generation targets from the given search terms and
// the search-term column of a baseline table, dropping duplicate keys.
func occupations(terms []string, baselinePath string) ([]generate.Occupation, error) {
	if baselinePath != "" {
		labels, err := dataset.ReadLabelFile(baselinePath, dataset.BaselineKeyColumn, dataset.BaselineLabel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", baselinePath, err)
		}
		keys := make([]string, 0, len(labels))
		for k := range labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		terms = append(terms, keys...)
	}

	var out []generate.Occupation
	seen := make(map[string]bool)
	for _, t := range terms {
		label := dataset.CleanKey(t)
		key := dataset.SquashKey(label)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, generate.Occupation{Key: key, Label: label})
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no occupations given (use --occupation or --from)")
	}
	return out, nil
}

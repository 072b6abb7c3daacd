package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/profile"
)

// maxShownErrors bounds the skipped-line messages printed by convert.
const maxShownErrors = 5

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	provider string // provider tag used in output file names
	output   string // output directory
}

// convertCommand creates the convert command for turning batch API output
// into per-occupation profile files.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <batch.jsonl>...",
		Short: "Convert batch API output into profile files",
		Long: `Convert OpenAI or Gemini batch output (JSONL, one reply per line) into
<occupation>profiles_<provider>.csv files. Replies are appended, so several
batch files for the same provider can be converted into one directory.

Lines whose reply cannot be parsed are skipped and counted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.provider, "provider", "p", "openai", "provider tag for output file names")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "profiles", "output directory")

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, files []string, opts *convertOpts) (err error) {
	logger := loggerFromContext(cmd.Context())

	app := profile.NewAppender(opts.output, opts.provider)
	defer func() {
		if cerr := app.Close(); err == nil {
			err = cerr
		}
	}()

	var total profile.ConvertStats
	for _, path := range files {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		st, err := convertFile(path, app)
		if err != nil {
			return err
		}
		logger.Info("Converted batch file", "path", path, "parsed", st.Parsed, "skipped", st.Skipped)
		total.Lines += st.Lines
		total.Parsed += st.Parsed
		total.Skipped += st.Skipped
		total.Errors = append(total.Errors, st.Errors...)
	}

	if total.Skipped > 0 {
		printWarning("Skipped %d of %d lines", total.Skipped, total.Lines)
		for i, msg := range total.Errors {
			if i == maxShownErrors {
				printDetail("... and %d more", len(total.Errors)-maxShownErrors)
				break
			}
			printDetail("%s", msg)
		}
	}
	printSuccess("Converted %d replies into %d files", total.Parsed, len(app.Files()))
	printKeyValue("Directory", opts.output)
	printNewline()
	printNextStep("Aggregate them", fmt.Sprintf("biasplot aggregate %s", opts.output))
	return nil
}

func convertFile(path string, app *profile.Appender) (profile.ConvertStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return profile.ConvertStats{}, err
	}
	defer f.Close()
	st, err := profile.ConvertBatch(f, app)
	if err != nil {
		return st, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

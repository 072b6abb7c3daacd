package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/genai-bias/biasplot/pkg/config"
	"github.com/genai-bias/biasplot/pkg/errors"
	"github.com/genai-bias/biasplot/pkg/observability"
	"github.com/genai-bias/biasplot/pkg/pipeline"
)

const appName = "biasplot"

// Levels accepted by [New] and [CLI.SetLogLevel].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state shared by every subcommand.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// installHooks sends pipeline, cache and generation events to the logger.
// They only show up with -v.
func (c *CLI) installHooks() {
	h := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetGenerationHooks(h)
}

func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// loadConfig reads the TOML chart config at path. An empty path yields the
// defaults so every command works without a config file.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// parseSources turns repeated --source NAME=PATH flags into sources, in
// flag order.
func parseSources(flags []string) ([]config.Source, error) {
	sources := make([]config.Source, 0, len(flags))
	for _, f := range flags {
		name, path, ok := strings.Cut(f, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid --source %q (want NAME=PATH)", f)
		}
		sources = append(sources, config.Source{Name: name, Path: path})
	}
	return sources, nil
}

// parseFormats splits "svg,PNG, pdf" into lower-case names. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{config.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

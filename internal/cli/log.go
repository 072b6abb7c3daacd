// Package cli implements the biasplot command-line interface.
//
// Commands are built with cobra, one file per command:
//   - plot: render the dot plot to SVG, PDF, PNG, CSV or JSON
//   - diff: compute difference tables from percentages and a baseline
//   - averages: report per-group averages per model
//   - labels: show the occupations, order and labels a plot would use
//   - aggregate: turn profile CSVs into a percentages table
//   - convert: turn provider batch output into profile CSVs
//   - generate: request profiles from an LLM provider
//   - cache: manage the artifact and reply cache
//
// Diagnostics go to stderr through a charmbracelet/log logger carried in the
// command context; --verbose (-v) enables debug output, including pipeline
// stage and cache events. Results go to stdout through the print helpers in
// ui.go.
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// newLogger creates a timestamped ("15:04:05.00") logger at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of one operation when it is done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Plotted 41 occupations (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logWarnings logs data-quality warnings with their codes.
func logWarnings(l *log.Logger, warnings []errors.Warning) {
	for _, w := range warnings {
		l.Warn(w.Message, "code", w.Code)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

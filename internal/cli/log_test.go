package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/genai-bias/biasplot/pkg/errors"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("loaded") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("stage start") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("stage start") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("missing") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Aggregated 41 occupations")

	out := buf.String()
	if !strings.Contains(out, "Aggregated 41 occupations (") {
		t.Errorf("output = %q, want message with elapsed time", out)
	}
}

func TestLogWarnings(t *testing.T) {
	var buf bytes.Buffer
	logWarnings(newLogger(&buf, log.InfoLevel), []errors.Warning{
		errors.Warnf(errors.ErrCodeMissingBaseline, "ChatGPT lacks welder"),
	})
	out := buf.String()
	if !strings.Contains(out, "ChatGPT lacks welder") || !strings.Contains(out, "MISSING_BASELINE") {
		t.Errorf("output = %q, want message and code", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

// Package generate collects synthetic occupational profiles from LLM
// providers.
//
// A [Runner] asks one [Provider] for a fixed number of profiles per
// occupation, one request at a time. Each reply is cached under the run id
// before it is parsed, so an interrupted run can be resumed with the same
// id without paying for replies that already arrived. Failed requests and
// unparsable replies are logged and skipped; nothing is retried.
package generate

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// Provider sends one prompt to an LLM and returns the reply text.
type Provider interface {
	// Name identifies the provider in file names and cache keys ("openai").
	Name() string
	// Model is the model the provider sends requests to.
	Model() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds the settings shared by all providers.
type Config struct {
	APIKey string
	// Model overrides the provider's default model.
	Model string
	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
}

// Factory creates a provider from a config.
type Factory func(ctx context.Context, cfg Config) (Provider, error)

var factories = map[string]Factory{
	OpenAIName: func(_ context.Context, cfg Config) (Provider, error) { return NewOpenAI(cfg) },
	GeminiName: func(ctx context.Context, cfg Config) (Provider, error) { return NewGemini(ctx, cfg) },
}

// apiKeyEnv names the environment variable each provider reads its key from.
var apiKeyEnv = map[string]string{
	OpenAIName: "OPENAI_API_KEY",
	GeminiName: "GEMINI_API_KEY",
}

// Providers returns the supported provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the named provider. An empty cfg.APIKey is read from the
// provider's environment variable.
func New(ctx context.Context, name string, cfg Config) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	f, ok := factories[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown provider %q (must be one of: %s)",
			name, strings.Join(Providers(), ", "))
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(apiKeyEnv[name])
	}
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s requires an API key (set %s)", name, apiKeyEnv[name])
	}
	return f(ctx, cfg)
}

package generate

import (
	"context"
	stderrors "errors"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/genai-bias/biasplot/pkg/buildinfo"
	"github.com/genai-bias/biasplot/pkg/errors"
)

const (
	OpenAIName         = "openai"
	openAIDefaultModel = "gpt-4o"
)

// OpenAI is a Provider backed by the chat completions API.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI provider. SDK retries are disabled; a failed
// request is reported once and skipped by the Runner.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "openai API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", buildinfo.UserAgent()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

func (p *OpenAI) Name() string  { return OpenAIName }
func (p *OpenAI) Model() string { return p.model }

// Complete sends prompt as a single user message.
func (p *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(p.model),
	})
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.ErrCodeProvider, "openai returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New(errors.ErrCodeProvider, "openai returned an empty reply")
	}
	return text, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if stderrors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return errors.Wrap(errors.ErrCodeProvider, err, "openai status %d: %s", apiErr.StatusCode, apiErr.Message)
		}
		return errors.Wrap(errors.ErrCodeProvider, err, "openai status %d", apiErr.StatusCode)
	}
	return errors.Wrap(errors.ErrCodeProvider, err, "openai request")
}

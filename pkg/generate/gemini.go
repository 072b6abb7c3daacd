package generate

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/genai-bias/biasplot/pkg/errors"
)

const (
	GeminiName         = "gemini"
	geminiDefaultModel = "gemini-2.5-flash"
)

// Gemini is a Provider backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = geminiDefaultModel
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "create gemini client")
	}
	return &Gemini{client: client, model: cfg.Model}, nil
}

func (p *Gemini) Name() string  { return GeminiName }
func (p *Gemini) Model() string { return p.model }

// Complete sends prompt as a single user turn.
func (p *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeProvider, err, "gemini request")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New(errors.ErrCodeProvider, "gemini returned an empty reply")
	}
	return text, nil
}

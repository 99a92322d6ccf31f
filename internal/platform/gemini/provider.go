package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/generation"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/redact"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models the provider uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Provider implements generation.Provider using the Gemini API.
type Provider struct {
	models contentGenerator
	model  string
	logger *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// New creates a Gemini provider from the LLM configuration.
func New(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Provider, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newProvider(client.Models, cfg.ModelName, logger), nil
}

func newProvider(models contentGenerator, model string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		models: models,
		model:  model,
		logger: logger.With(slog.String("component", "gemini"), slog.String("model", model)),
	}
}

// Name implements generation.Provider.
func (p *Provider) Name() string { return "gemini" }

// Complete implements generation.Provider.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		log.WarnContext(ctx, "gemini call failed", slog.String("error", redact.Error(err)))
		return "", classifyError(err)
	}

	text, err := responseText(resp)
	if err != nil {
		log.WarnContext(ctx, "gemini returned no usable text", slog.String("error", err.Error()))
		return "", err
	}

	log.DebugContext(ctx, "gemini call succeeded", slog.Int("response_length", len(text)))
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrMalformedResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrMalformedResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrMalformedResponse)
	}
	return b.String(), nil
}

// classifyError maps a client error to the generation taxonomy. Quota and
// rate-limit responses surface as HTTP 429 / RESOURCE_EXHAUSTED.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", generation.ErrProviderFailure, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %s", generation.ErrProviderRateLimited, redact.String(msg))
	}
	return fmt.Errorf("%w: %s", generation.ErrProviderFailure, redact.String(msg))
}

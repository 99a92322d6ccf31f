// Package openrouter implements generation.Provider against OpenRouter, or
// any other OpenAI-compatible chat completions endpoint, using go-openai.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/generation"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/redact"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You write revision material for Indian school students and answer with JSON only."

// Provider implements generation.Provider with chat completions.
type Provider struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// New creates an OpenRouter provider from the LLM configuration.
func New(cfg config.LLMConfig, logger *slog.Logger) (*Provider, error) {
	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("%w: openrouter API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientCfg := openai.DefaultConfig(cfg.OpenRouterAPIKey)
	if cfg.OpenRouterBaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.OpenRouterBaseURL, "/")
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.ModelName,
		logger: logger.With(slog.String("component", "openrouter"), slog.String("model", cfg.ModelName)),
	}, nil
}

// Name implements generation.Provider.
func (p *Provider) Name() string { return "openrouter" }

// Complete implements generation.Provider.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.WarnContext(ctx, "openrouter call failed", slog.String("error", redact.Error(err)))
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrMalformedResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", generation.ErrContentBlocked
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrMalformedResponse)
	}

	log.DebugContext(ctx, "openrouter call succeeded",
		slog.Int("response_length", len(choice.Message.Content)),
		slog.Int("total_tokens", resp.Usage.TotalTokens))
	return choice.Message.Content, nil
}

func classifyError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", generation.ErrProviderRateLimited, redact.Error(err))
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", generation.ErrProviderFailure, err)
	}
	return fmt.Errorf("%w: %s", generation.ErrProviderFailure, redact.Error(err))
}

package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := New(config.LLMConfig{
		OpenRouterAPIKey:  "sk-or-test-key",
		OpenRouterBaseURL: server.URL + "/",
		ModelName:         "meta-llama/llama-3.1-8b-instruct",
	}, nil)
	require.NoError(t, err)
	return p
}

func completion(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "gen-1",
		"object":  "chat.completion",
		"created": 1710000000,
		"model":   "meta-llama/llama-3.1-8b-instruct",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finishReason,
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestCompleteSendsPromptAndReturnsContent(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, completion(`[{"question":"q","answer":"a"}]`, "stop"))
	})

	text, err := p.Complete(context.Background(), "make five flashcards")
	require.NoError(t, err)

	assert.Equal(t, `[{"question":"q","answer":"a"}]`, text)
	assert.Equal(t, "Bearer sk-or-test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "meta-llama/llama-3.1-8b-instruct", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "make five flashcards", gotBody.Messages[1].Content)
	assert.Equal(t, "openrouter", p.Name())
}

func TestCompleteRateLimited(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"message": "Rate limit exceeded", "type": "rate_limit_exceeded", "code": 429},
		})
	})

	_, err := p.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, generation.ErrProviderRateLimited)
	assert.ErrorIs(t, err, generation.ErrProviderFailure)
}

func TestCompleteServerError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error": map[string]any{"message": "upstream unavailable", "type": "server_error"},
		})
	})

	_, err := p.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, generation.ErrProviderFailure)
	assert.False(t, errors.Is(err, generation.ErrProviderRateLimited))
}

func TestCompleteMalformedResponses(t *testing.T) {
	tests := map[string]map[string]any{
		"empty content":  completion("   ", "stop"),
		"content filter": completion("", "content_filter"),
		"no choices":     {"id": "gen-1", "object": "chat.completion", "choices": []any{}},
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			})
			_, err := p.Complete(context.Background(), "prompt")
			assert.ErrorIs(t, err, generation.ErrMalformedResponse)
		})
	}
}

func TestCompleteHonoursDeadline(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Complete(ctx, "prompt")
	assert.ErrorIs(t, err, generation.ErrProviderFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(config.LLMConfig{ModelName: "m"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = New(config.LLMConfig{OpenRouterAPIKey: "k"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

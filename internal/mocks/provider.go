package mocks

import (
	"context"
	"sync"
)

// MockProvider implements generation.Provider for testing
type MockProvider struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Reply string
	Err   error

	// Call tracking for verification
	CompleteCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Prompts contains all prompts passed to Complete calls
		Prompts []string
	}
}

// NewMockProviderWithReply creates a MockProvider that returns reply
func NewMockProviderWithReply(reply string) *MockProvider {
	return &MockProvider{Reply: reply}
}

// NewMockProviderWithError creates a MockProvider that returns err
func NewMockProviderWithError(err error) *MockProvider {
	return &MockProvider{Err: err}
}

// Complete implements the generation.Provider interface
func (m *MockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	m.CompleteCalls.Prompts = append(m.CompleteCalls.Prompts, prompt)
	m.CompleteCalls.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt)
	}
	return m.Reply, m.Err
}

// Name implements the generation.Provider interface
func (m *MockProvider) Name() string { return "mock" }

// Calls returns how many times Complete was called
func (m *MockProvider) Calls() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

package llm

import (
	"context"
)

// MockCompletionClient is a configurable mock for testing pipeline
// behavior without a live completion service. Set the function fields
// to control behavior in tests.
type MockCompletionClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty string and nil error.
	CompleteFunc func(ctx context.Context, prompt Prompt) (string, error)

	// CompleteVisionFunc is called when CompleteVision is invoked.
	// If nil, returns empty string and nil error.
	CompleteVisionFunc func(ctx context.Context, prompt Prompt, imageBase64 string) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification
	CompleteCalls       int
	CompleteVisionCalls int
	Prompts             []Prompt
}

// NewMockCompletionClient creates a new mock with sensible defaults.
func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{Model: "mock-model"}
}

// Complete implements CompletionClient.
func (m *MockCompletionClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	m.CompleteCalls++
	m.Prompts = append(m.Prompts, prompt)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

// CompleteVision implements CompletionClient.
func (m *MockCompletionClient) CompleteVision(ctx context.Context, prompt Prompt, imageBase64 string) (string, error) {
	m.CompleteVisionCalls++
	m.Prompts = append(m.Prompts, prompt)
	if m.CompleteVisionFunc != nil {
		return m.CompleteVisionFunc(ctx, prompt, imageBase64)
	}
	return "", nil
}

// GetModel implements CompletionClient.
func (m *MockCompletionClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// Reset clears call tracking.
func (m *MockCompletionClient) Reset() {
	m.CompleteCalls = 0
	m.CompleteVisionCalls = 0
	m.Prompts = nil
}

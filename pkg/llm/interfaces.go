// Package llm is the completion gateway: the single boundary through
// which the pipeline talks to external text-completion services.
package llm

import (
	"context"
	"time"
)

// Prompt is the ephemeral request value sent to the completion service.
// Constructed fresh per task; never cached across requests.
type Prompt struct {
	SystemMessage string
	UserMessage   string
	MaxTokens     int
	Timeout       time.Duration
	Temperature   float32
}

// CompletionClient defines the gateway operations. Complete issues one
// reasoning-tier request; CompleteVision issues one vision-tier request
// grounded on a base64-encoded image. Both return the raw completion
// text, which callers must treat as untrusted input.
// Use this interface for dependency injection to enable mocking in tests.
type CompletionClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	CompleteVision(ctx context.Context, prompt Prompt, imageBase64 string) (string, error)

	// GetModel returns the configured reasoning-tier model name.
	GetModel() string
}

// Ensure implementations satisfy CompletionClient at compile time.
var (
	_ CompletionClient = (*Client)(nil)
	_ CompletionClient = (*AnthropicClient)(nil)
	_ CompletionClient = (*MockCompletionClient)(nil)
)

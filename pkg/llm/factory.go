package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/retry"
)

// Provider names accepted by NewFromProvider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// NewFromProvider creates a CompletionClient for the named provider.
// An empty provider defaults to the OpenAI-compatible client, which
// also covers local and self-hosted endpoints.
func NewFromProvider(provider string, cfg *Config, visionRetry *retry.Policy, logger *zap.Logger) (CompletionClient, error) {
	switch provider {
	case ProviderAnthropic:
		if cfg.Model == "" {
			return nil, fmt.Errorf("model is required")
		}
		return NewAnthropicClient(cfg, visionRetry, logger), nil
	case ProviderOpenAI, "":
		return NewClient(cfg, visionRetry, logger)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", provider)
	}
}

package llm

import (
	"context"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/retry"
)

// AnthropicClient implements CompletionClient against the Anthropic
// Messages API. Selected by configuration when a deployment prefers
// Claude models over an OpenAI-compatible endpoint.
type AnthropicClient struct {
	client      *anthropic.Client
	model       string
	visionModel string
	visionRetry *retry.Policy
	logger      *zap.Logger
}

// NewAnthropicClient creates an Anthropic-backed completion client.
func NewAnthropicClient(cfg *Config, visionRetry *retry.Policy, logger *zap.Logger) *AnthropicClient {
	if visionRetry == nil {
		visionRetry = retry.VisionDefault()
	}

	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = cfg.Model
	}

	return &AnthropicClient{
		client:      anthropic.NewClient(cfg.APIKey),
		model:       cfg.Model,
		visionModel: visionModel,
		visionRetry: visionRetry,
		logger:      logger.Named("llm"),
	}
}

// Complete issues exactly one reasoning-tier request.
func (c *AnthropicClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	content := []anthropic.MessageContent{anthropic.NewTextMessageContent(prompt.UserMessage)}
	return c.complete(ctx, c.model, content, prompt)
}

// CompleteVision issues a vision-tier request under the vision retry
// policy, embedding the image as a base64 content block.
func (c *AnthropicClient) CompleteVision(ctx context.Context, prompt Prompt, imageBase64 string) (string, error) {
	content := []anthropic.MessageContent{
		anthropic.NewImageMessageContent(
			anthropic.NewMessageContentSource(anthropic.MessagesContentSourceTypeBase64, "image/jpeg", imageBase64),
		),
		anthropic.NewTextMessageContent(prompt.UserMessage),
	}

	return retry.DoWithResult(ctx, c.visionRetry, func() (string, error) {
		return c.complete(ctx, c.visionModel, content, prompt)
	})
}

func (c *AnthropicClient) complete(ctx context.Context, model string, content []anthropic.MessageContent, prompt Prompt) (string, error) {
	if prompt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, prompt.Timeout)
		defer cancel()
	}

	c.logger.Debug("completion request",
		zap.String("model", model),
		zap.Int("system_len", len(prompt.SystemMessage)),
		zap.Int("user_len", len(prompt.UserMessage)),
		zap.Int("max_tokens", prompt.MaxTokens))

	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(model),
		System:      prompt.SystemMessage,
		MaxTokens:   prompt.MaxTokens,
		Temperature: &prompt.Temperature,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: content},
		},
	})
	if err != nil {
		c.logger.Error("completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			c.logger.Info("completion request completed",
				zap.Int("input_tokens", resp.Usage.InputTokens),
				zap.Int("output_tokens", resp.Usage.OutputTokens),
				zap.Duration("elapsed", time.Since(start)))
			return *block.Text, nil
		}
	}

	return "", NewError(ErrorTypeService, "no text content in response", false, nil)
}

// GetModel returns the configured reasoning-tier model name.
func (c *AnthropicClient) GetModel() string {
	return c.model
}

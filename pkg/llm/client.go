package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/retry"
)

// Client provides access to OpenAI-compatible completion endpoints.
// Prompt contents are never logged, only sizes and timings.
type Client struct {
	client      *openai.Client
	endpoint    string
	model       string
	visionModel string
	visionRetry *retry.Policy
	logger      *zap.Logger
}

// Config holds configuration for creating a completion client.
type Config struct {
	Endpoint    string // Base URL, e.g., "https://api.openai.com/v1"
	Model       string // Reasoning-tier model, e.g., "gpt-4"
	VisionModel string // Vision-tier model, e.g., "gpt-4o"
	APIKey      string // Optional for local endpoints
}

// NewClient creates a new OpenAI-compatible completion client. The
// visionRetry policy governs vision-tier calls only; pass nil for the
// default linear-backoff policy.
func NewClient(cfg *Config, visionRetry *retry.Policy, logger *zap.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if visionRetry == nil {
		visionRetry = retry.VisionDefault()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = cfg.Model
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		visionModel: visionModel,
		visionRetry: visionRetry,
		logger:      logger.Named("llm"),
	}, nil
}

// Complete issues exactly one reasoning-tier request. Generation tasks
// favor one long, well-provisioned attempt over several short retried
// ones, so there is no retry here.
func (c *Client) Complete(ctx context.Context, prompt Prompt) (string, error) {
	return c.complete(ctx, c.model, chatMessages(prompt), prompt)
}

// CompleteVision issues a vision-tier request carrying the image as a
// base64 data URL. Transient vision-service errors are common and cheap
// to retry against, so this call runs under the vision retry policy.
func (c *Client) CompleteVision(ctx context.Context, prompt Prompt, imageBase64 string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: prompt.SystemMessage},
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: prompt.UserMessage},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    "data:image/jpeg;base64," + imageBase64,
						Detail: openai.ImageURLDetailHigh,
					},
				},
			},
		},
	}

	return retry.DoWithResult(ctx, c.visionRetry, func() (string, error) {
		return c.complete(ctx, c.visionModel, messages, prompt)
	})
}

func chatMessages(prompt Prompt) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: prompt.SystemMessage},
		{Role: openai.ChatMessageRoleUser, Content: prompt.UserMessage},
	}
}

func (c *Client) complete(ctx context.Context, model string, messages []openai.ChatCompletionMessage, prompt Prompt) (string, error) {
	if prompt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, prompt.Timeout)
		defer cancel()
	}

	c.logger.Debug("completion request",
		zap.String("model", model),
		zap.Int("system_len", len(prompt.SystemMessage)),
		zap.Int("user_len", len(prompt.UserMessage)),
		zap.Int("max_tokens", prompt.MaxTokens),
		zap.Duration("timeout", prompt.Timeout))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
	})
	if err != nil {
		c.logger.Error("completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", NewError(ErrorTypeService, "no choices in response", false, nil)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	c.logger.Info("completion request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return content, nil
}

// GetModel returns the configured reasoning-tier model name.
func (c *Client) GetModel() string {
	return c.model
}

// GetEndpoint returns the configured endpoint.
func (c *Client) GetEndpoint() string {
	return c.endpoint
}

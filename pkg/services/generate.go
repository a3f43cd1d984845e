package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/analysis"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/apperrors"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/extract"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/logging"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/markdown"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/prompts"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/schema"
)

// GenerateRequest carries one layout or data-prep generation request.
// ModelMetadata accepts whatever shape the caller sends; normalization
// downstream absorbs maps, JSON strings, and malformed fragments.
type GenerateRequest struct {
	ModelMetadata      any                    `json:"model_metadata"`
	SketchDescription  any                    `json:"sketch_description,omitempty"`
	Platform           string                 `json:"platform_selected"`
	CustomPrompt       string                 `json:"custom_prompt,omitempty"`
	DataPrepOnly       bool                   `json:"data_prep_only,omitempty"`
	KPIs               []prompts.KPI          `json:"kpi_list,omitempty"`
	DataDictionary     prompts.DataDictionary `json:"data_dictionary,omitempty"`
	InstructionPersona string                 `json:"instruction_complexity,omitempty"`
}

// GenerateResult is the outcome of a generation request. For data-prep
// requests WireframeJSON is always empty.
type GenerateResult struct {
	WireframeJSON      any    `json:"wireframe_json"`
	LayoutInstructions string `json:"layout_instructions"`
}

// GenerateService produces dashboard layout instructions and data
// preparation steps from normalized data models.
type GenerateService interface {
	GenerateDataPrep(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	GenerateLayout(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

type generateService struct {
	client     llm.CompletionClient
	normalizer *schema.Normalizer
	thresholds analysis.Thresholds
	logger     *zap.Logger
}

// NewGenerateService creates a new generation service.
func NewGenerateService(
	client llm.CompletionClient,
	normalizer *schema.Normalizer,
	thresholds analysis.Thresholds,
	logger *zap.Logger,
) GenerateService {
	return &generateService{
		client:     client,
		normalizer: normalizer,
		thresholds: thresholds,
		logger:     logger.Named("generate"),
	}
}

var _ GenerateService = (*generateService)(nil)

// GenerateDataPrep runs the data-preparation pipeline: normalize the
// model, analyze it, assemble the prompt, complete, then append the
// validation appendix and tidy the result.
func (s *generateService) GenerateDataPrep(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Platform == "" {
		return nil, apperrors.ErrMissingPlatform
	}

	model := s.normalizer.Normalize(req.ModelMetadata)
	if len(model.Tables) == 0 {
		return nil, apperrors.ErrNoTables
	}

	result := analysis.Analyze(model, s.thresholds)
	s.logger.Info("Generating data prep instructions",
		zap.String("platform", req.Platform),
		zap.Int("tables", result.TableCount),
		zap.Int("columns", result.ColumnCount),
		zap.String("complexity", result.Complexity.String()))

	prompt := prompts.BuildDataPrepPrompt(result, prompts.Options{
		Platform:           req.Platform,
		CustomRequirements: req.CustomPrompt,
		Complexity:         req.InstructionPersona,
		KPIs:               req.KPIs,
		Dictionary:         req.DataDictionary,
	})

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("Data prep completion failed",
			zap.String("error", logging.SanitizeError(err)))
		// Degrade to canned guidance rather than failing the request.
		raw = dataPrepFallback(req.Platform)
	}

	instructions := appendValidationSteps(raw, result)

	return &GenerateResult{
		WireframeJSON:      "",
		LayoutInstructions: markdown.Tidy(instructions),
	}, nil
}

// GenerateLayout runs the layout pipeline: normalize, analyze for the
// size tier, assemble the JSON prompt, complete, then normalize the
// response down the extraction ladder.
func (s *generateService) GenerateLayout(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Platform == "" {
		return nil, apperrors.ErrMissingPlatform
	}

	model := s.normalizer.Normalize(req.ModelMetadata)
	result := analysis.Analyze(model, s.thresholds)

	s.logger.Info("Generating dashboard layout",
		zap.String("platform", req.Platform),
		zap.Int("tables", result.TableCount),
		zap.Int("columns", result.ColumnCount),
		zap.String("complexity", result.Complexity.String()))

	prompt := prompts.BuildLayoutPrompt(model, req.SketchDescription, result.Complexity, prompts.Options{
		Platform:           req.Platform,
		CustomRequirements: req.CustomPrompt,
		KPIs:               req.KPIs,
		Dictionary:         req.DataDictionary,
	})

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("Layout completion failed",
			zap.String("error", logging.SanitizeError(err)))
		return &GenerateResult{
			WireframeJSON:      req.SketchDescription,
			LayoutInstructions: "AI service temporarily unavailable. Please try again.",
		}, nil
	}

	normalized, err := extract.Normalize(raw, "layout_instructions")
	if err != nil {
		return nil, fmt.Errorf("normalize layout response: %w", err)
	}
	s.logger.Debug("Layout response normalized",
		zap.String("strategy", string(normalized.Strategy)))

	res := &GenerateResult{WireframeJSON: ""}
	if normalized.Object != nil {
		if wf, ok := normalized.Object["wireframe_json"]; ok {
			res.WireframeJSON = wf
		}
	}

	// Content that is still raw JSON after every rung passes through
	// untouched for the caller to handle.
	text := normalized.Text
	if normalized.Strategy == extract.StrategyPassthrough &&
		strings.HasPrefix(strings.TrimSpace(text), "{") && strings.HasSuffix(strings.TrimSpace(text), "}") {
		res.LayoutInstructions = raw
		return res, nil
	}

	res.LayoutInstructions = markdown.Tidy(text)
	return res, nil
}

// dataPrepFallback is returned when the completion service is down so
// the caller still gets a usable starting point.
func dataPrepFallback(platform string) string {
	return fmt.Sprintf(`
# %s Data Preparation Steps

## Data Model Analysis
Your data model has been analyzed and the following issues were identified:
- Please check your API key and connection
- The AI service is currently experiencing delays

## Basic Data Preparation Steps
1. **Connect to your data source**
2. **Clean data types for each column**
3. **Handle null values appropriately**
4. **Set up table relationships**
5. **Validate data quality**

Please try again or contact support if the issue persists.
`, platform)
}

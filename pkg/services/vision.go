package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/apperrors"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/config"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/extract"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/prompts"
)

// maxWireframeSections caps how many sections are extracted from one
// layout description.
const maxWireframeSections = 8

// ImageAnalysisResult describes an analyzed wireframe image.
type ImageAnalysisResult struct {
	LayoutDescription string `json:"layout_description"`
	Platform          string `json:"platform"`
	ProcessingMethod  string `json:"processing_method"`
	FileName          string `json:"file_name"`
	FileSize          int    `json:"file_size"`
	Status            string `json:"status"`
}

// WireframeSection is one machine-readable component extracted from a
// layout description.
type WireframeSection struct {
	LayoutType string `json:"layout_type"`
	Section    string `json:"section"`
	Label      string `json:"label"`
}

// wireframeSectionList mirrors the JSON shape the vision model returns
// for the structured extraction task.
type wireframeSectionList struct {
	Sections []WireframeSection `json:"sections"`
}

// VisionService analyzes dashboard wireframe images through the
// vision-tier completion path.
type VisionService interface {
	AnalyzeImage(ctx context.Context, image []byte, contentType, fileName, platform string) (*ImageAnalysisResult, error)
	ExtractWireframeSections(ctx context.Context, image []byte, contentType, platform string) ([]WireframeSection, error)
}

type visionService struct {
	client llm.CompletionClient
	cfg    config.ImageConfig
	logger *zap.Logger
}

// NewVisionService creates a new wireframe analysis service.
func NewVisionService(client llm.CompletionClient, cfg config.ImageConfig, logger *zap.Logger) VisionService {
	return &visionService{
		client: client,
		cfg:    cfg,
		logger: logger.Named("vision"),
	}
}

var _ VisionService = (*visionService)(nil)

// AnalyzeImage validates the upload and asks the vision model for a
// structured prose description of the wireframe.
func (s *visionService) AnalyzeImage(ctx context.Context, image []byte, contentType, fileName, platform string) (*ImageAnalysisResult, error) {
	if err := s.validateImage(image, contentType); err != nil {
		return nil, err
	}
	if platform == "" {
		platform = "Power BI"
	}

	s.logger.Info("Analyzing wireframe image",
		zap.String("file", fileName),
		zap.Int("bytes", len(image)),
		zap.String("platform", platform))

	description, err := s.client.CompleteVision(ctx,
		prompts.BuildImageAnalysisPrompt(platform),
		base64.StdEncoding.EncodeToString(image))
	if err != nil {
		return nil, fmt.Errorf("vision analysis: %w", err)
	}

	return &ImageAnalysisResult{
		LayoutDescription: description,
		Platform:          platform,
		ProcessingMethod:  "ai_vision",
		FileName:          fileName,
		FileSize:          len(image),
		Status:            "success",
	}, nil
}

// ExtractWireframeSections asks the vision model for a machine-readable
// section list, falling back to heuristic extraction from a prose
// description when the structured call yields nothing usable.
func (s *visionService) ExtractWireframeSections(ctx context.Context, image []byte, contentType, platform string) ([]WireframeSection, error) {
	if err := s.validateImage(image, contentType); err != nil {
		return nil, err
	}
	if platform == "" {
		platform = "Generic"
	}

	encoded := base64.StdEncoding.EncodeToString(image)

	raw, err := s.client.CompleteVision(ctx, prompts.BuildWireframeJSONPrompt(platform), encoded)
	if err == nil {
		if parsed, decodeErr := extract.Decode[wireframeSectionList](raw); decodeErr == nil && len(parsed.Sections) > 0 {
			sections := parsed.Sections
			if len(sections) > maxWireframeSections {
				sections = sections[:maxWireframeSections]
			}
			return sections, nil
		}
		// Structured output failed to parse; the raw text is still a
		// usable description for the heuristic path.
		return SectionsFromDescription(raw), nil
	}

	description, err := s.client.CompleteVision(ctx, prompts.BuildImageAnalysisPrompt(platform), encoded)
	if err != nil {
		return nil, fmt.Errorf("vision analysis: %w", err)
	}
	return SectionsFromDescription(description), nil
}

func (s *visionService) validateImage(image []byte, contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.ErrUnsupportedImage
	}
	if len(image) == 0 {
		return apperrors.ErrEmptyImage
	}
	if int64(len(image)) > s.cfg.MaxUploadBytes {
		return fmt.Errorf("%w: limit is %d bytes", apperrors.ErrImageTooLarge, s.cfg.MaxUploadBytes)
	}
	return nil
}

// SectionsFromDescription scans a prose layout description for lines
// that name visual components and converts them to sections. Always
// returns at least one entry.
func SectionsFromDescription(description string) []WireframeSection {
	var sections []WireframeSection

	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(sections) >= maxWireframeSections {
			continue
		}
		lower := strings.ToLower(line)
		if !containsComponentWord(lower) {
			continue
		}

		layoutType := "Chart"
		if strings.Contains(lower, "kpi") || strings.Contains(lower, "card") {
			layoutType = "KPI"
		} else if strings.Contains(lower, "table") {
			layoutType = "Table"
		}

		section := "main"
		if strings.Contains(lower, "top") {
			section = "top"
		} else if strings.Contains(lower, "bottom") {
			section = "bottom"
		}

		label := truncateLabel(line, 100)
		sections = append(sections, WireframeSection{
			LayoutType: layoutType,
			Section:    section,
			Label:      label,
		})
	}

	if len(sections) == 0 {
		sections = []WireframeSection{{
			LayoutType: "Chart",
			Section:    "main",
			Label:      "AI analyzed dashboard layout",
		}}
	}
	return sections
}

// truncateLabel caps a label at max bytes without splitting a UTF-8
// rune mid-sequence.
func truncateLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func containsComponentWord(lower string) bool {
	for _, word := range []string{"kpi", "chart", "table", "slicer", "visual", "card", "graph"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/apperrors"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/config"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

func newVisionService(mock *llm.MockCompletionClient) VisionService {
	return NewVisionService(mock, config.ImageConfig{MaxUploadBytes: 1024}, zap.NewNop())
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func TestAnalyzeImage_Validation(t *testing.T) {
	svc := newVisionService(llm.NewMockCompletionClient())

	tests := []struct {
		name        string
		image       []byte
		contentType string
		wantErr     error
	}{
		{"wrong content type", pngBytes, "application/pdf", apperrors.ErrUnsupportedImage},
		{"empty image", nil, "image/png", apperrors.ErrEmptyImage},
		{"oversized image", make([]byte, 2048), "image/png", apperrors.ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AnalyzeImage(context.Background(), tt.image, tt.contentType, "sketch.png", "Power BI")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAnalyzeImage_Success(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteVisionFunc = func(ctx context.Context, prompt llm.Prompt, imageBase64 string) (string, error) {
		assert.NotEmpty(t, imageBase64)
		return "Top row holds three KPI cards, main area a bar chart.", nil
	}
	svc := newVisionService(mock)

	result, err := svc.AnalyzeImage(context.Background(), pngBytes, "image/png", "sketch.png", "")
	require.NoError(t, err)

	assert.Equal(t, "Top row holds three KPI cards, main area a bar chart.", result.LayoutDescription)
	assert.Equal(t, "Power BI", result.Platform) // default
	assert.Equal(t, "ai_vision", result.ProcessingMethod)
	assert.Equal(t, "sketch.png", result.FileName)
	assert.Equal(t, len(pngBytes), result.FileSize)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 1, mock.CompleteVisionCalls)
}

func TestAnalyzeImage_VisionError(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteVisionFunc = func(ctx context.Context, prompt llm.Prompt, imageBase64 string) (string, error) {
		return "", errors.New("error, status code: 503")
	}
	svc := newVisionService(mock)

	_, err := svc.AnalyzeImage(context.Background(), pngBytes, "image/png", "sketch.png", "Tableau")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vision analysis")
}

func TestExtractWireframeSections_Structured(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteVisionFunc = func(ctx context.Context, prompt llm.Prompt, imageBase64 string) (string, error) {
		return `{"sections": [
			{"layout_type": "KPI", "section": "top", "label": "Revenue card"},
			{"layout_type": "Chart", "section": "main", "label": "Trend line"}
		]}`, nil
	}
	svc := newVisionService(mock)

	sections, err := svc.ExtractWireframeSections(context.Background(), pngBytes, "image/png", "Power BI")
	require.NoError(t, err)

	require.Len(t, sections, 2)
	assert.Equal(t, "KPI", sections[0].LayoutType)
	assert.Equal(t, "top", sections[0].Section)
	assert.Equal(t, 1, mock.CompleteVisionCalls)
}

func TestExtractWireframeSections_CapsSectionCount(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"sections": [`)
	for i := 0; i < 12; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"layout_type": "Chart", "section": "main", "label": "chart %d"}`, i)
	}
	b.WriteString("]}")

	mock := llm.NewMockCompletionClient()
	mock.CompleteVisionFunc = func(ctx context.Context, prompt llm.Prompt, imageBase64 string) (string, error) {
		return b.String(), nil
	}
	svc := newVisionService(mock)

	sections, err := svc.ExtractWireframeSections(context.Background(), pngBytes, "image/png", "Power BI")
	require.NoError(t, err)
	assert.Len(t, sections, maxWireframeSections)
}

func TestExtractWireframeSections_HeuristicOnBadJSON(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteVisionFunc = func(ctx context.Context, prompt llm.Prompt, imageBase64 string) (string, error) {
		return "The top area shows a KPI card.\nBelow sits a bar chart.", nil
	}
	svc := newVisionService(mock)

	sections, err := svc.ExtractWireframeSections(context.Background(), pngBytes, "image/png", "Power BI")
	require.NoError(t, err)

	require.Len(t, sections, 2)
	assert.Equal(t, "KPI", sections[0].LayoutType)
	assert.Equal(t, "top", sections[0].Section)
	assert.Equal(t, "Chart", sections[1].LayoutType)
	assert.Equal(t, 1, mock.CompleteVisionCalls)
}

func TestExtractWireframeSections_FallsBackToDescriptionCall(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteVisionFunc = func(ctx context.Context, prompt llm.Prompt, imageBase64 string) (string, error) {
		if mock.CompleteVisionCalls == 1 {
			return "", errors.New("error, status code: 503")
		}
		return "A table of recent orders at the bottom.", nil
	}
	svc := newVisionService(mock)

	sections, err := svc.ExtractWireframeSections(context.Background(), pngBytes, "image/png", "")
	require.NoError(t, err)

	require.Len(t, sections, 1)
	assert.Equal(t, "Table", sections[0].LayoutType)
	assert.Equal(t, "bottom", sections[0].Section)
	assert.Equal(t, 2, mock.CompleteVisionCalls)
}

func TestExtractWireframeSections_BothCallsFail(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteVisionFunc = func(ctx context.Context, prompt llm.Prompt, imageBase64 string) (string, error) {
		return "", errors.New("error, status code: 503")
	}
	svc := newVisionService(mock)

	_, err := svc.ExtractWireframeSections(context.Background(), pngBytes, "image/png", "Power BI")
	require.Error(t, err)
	assert.Equal(t, 2, mock.CompleteVisionCalls)
}

func TestSectionsFromDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []WireframeSection
	}{
		{
			name:  "component lines classified",
			input: "Header text only\nThree KPI cards across the top\nA line graph in the center",
			expected: []WireframeSection{
				{LayoutType: "KPI", Section: "top", Label: "Three KPI cards across the top"},
				{LayoutType: "Chart", Section: "main", Label: "A line graph in the center"},
			},
		},
		{
			name:  "no components yields placeholder",
			input: "Just some text about nothing in particular.",
			expected: []WireframeSection{
				{LayoutType: "Chart", Section: "main", Label: "AI analyzed dashboard layout"},
			},
		},
		{
			name:  "table at bottom",
			input: "Detail table along the bottom edge",
			expected: []WireframeSection{
				{LayoutType: "Table", Section: "bottom", Label: "Detail table along the bottom edge"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SectionsFromDescription(tt.input))
		})
	}
}

func TestSectionsFromDescription_TruncatesLongLabels(t *testing.T) {
	long := "chart " + strings.Repeat("x", 200)
	sections := SectionsFromDescription(long)
	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Label, 100)
}

func TestSectionsFromDescription_TruncationKeepsValidUTF8(t *testing.T) {
	// "é" is 2 bytes; with a 7-byte prefix the 100-byte cap lands
	// mid-rune and must back up to the previous boundary instead of
	// emitting a broken sequence.
	long := "charts " + strings.Repeat("é", 100)
	sections := SectionsFromDescription(long)
	require.Len(t, sections, 1)

	label := sections[0].Label
	assert.True(t, utf8.ValidString(label))
	assert.Len(t, label, 99)
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", truncateLabel("short", 100))
	assert.Equal(t, "abc", truncateLabel("abcdef", 3))
	assert.Equal(t, "ab", truncateLabel("abéf", 3))
	assert.Equal(t, "", truncateLabel("世界", 2))
}

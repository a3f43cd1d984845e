package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

func TestGenerateSprint_ParsesPlan(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteFunc = func(ctx context.Context, prompt llm.Prompt) (string, error) {
		return "```json\n" + `{
			"sprint_stories": [
				{"title": "Build revenue KPI card", "points": 3, "description": "Card visual with measure"},
				{"title": "Sales trend line chart", "points": 5, "description": "Monthly trend with drilldown"}
			],
			"over_under_capacity": -2
		}` + "\n```", nil
	}
	svc := NewSprintService(mock, zap.NewNop())

	result, err := svc.GenerateSprint(context.Background(), SprintRequest{
		LayoutInstructions: "## Measures\nTotal Sales",
		SprintLengthDays:   10,
		Velocity:           10,
	})
	require.NoError(t, err)

	require.Len(t, result.SprintStories, 2)
	assert.Equal(t, "Build revenue KPI card", result.SprintStories[0].Title)
	assert.Equal(t, 3, result.SprintStories[0].Points)
	assert.Equal(t, -2, result.OverUnderCapacity)
}

func TestGenerateSprint_NullStoriesBecomeEmptySlice(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteFunc = func(ctx context.Context, prompt llm.Prompt) (string, error) {
		return `{"sprint_stories": null, "over_under_capacity": 0}`, nil
	}
	svc := NewSprintService(mock, zap.NewNop())

	result, err := svc.GenerateSprint(context.Background(), SprintRequest{Velocity: 8})
	require.NoError(t, err)

	assert.NotNil(t, result.SprintStories)
	assert.Empty(t, result.SprintStories)
}

func TestGenerateSprint_CompletionError(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteFunc = func(ctx context.Context, prompt llm.Prompt) (string, error) {
		return "", errors.New("error, status code: 503")
	}
	svc := NewSprintService(mock, zap.NewNop())

	_, err := svc.GenerateSprint(context.Background(), SprintRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sprint generation completion")
}

func TestGenerateSprint_UnparseableResponse(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteFunc = func(ctx context.Context, prompt llm.Prompt) (string, error) {
		return "Here is your sprint plan in prose form.", nil
	}
	svc := NewSprintService(mock, zap.NewNop())

	_, err := svc.GenerateSprint(context.Background(), SprintRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode sprint plan")
}

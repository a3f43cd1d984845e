package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/extract"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/prompts"
)

// SprintRequest carries one sprint planning request.
type SprintRequest struct {
	LayoutInstructions string `json:"layout_instructions"`
	SprintLengthDays   int    `json:"sprint_length_days"`
	Velocity           int    `json:"velocity"`
}

// SprintStory is one backlog item in the generated sprint plan.
type SprintStory struct {
	Title       string `json:"title"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// SprintResult is the generated sprint backlog. OverUnderCapacity is
// positive when planned points exceed the team's velocity.
type SprintResult struct {
	SprintStories     []SprintStory `json:"sprint_stories"`
	OverUnderCapacity int           `json:"over_under_capacity"`
}

// SprintService converts layout instructions into a Scrum sprint plan.
type SprintService interface {
	GenerateSprint(ctx context.Context, req SprintRequest) (*SprintResult, error)
}

type sprintService struct {
	client llm.CompletionClient
	logger *zap.Logger
}

// NewSprintService creates a new sprint planning service.
func NewSprintService(client llm.CompletionClient, logger *zap.Logger) SprintService {
	return &sprintService{
		client: client,
		logger: logger.Named("sprint"),
	}
}

var _ SprintService = (*sprintService)(nil)

func (s *sprintService) GenerateSprint(ctx context.Context, req SprintRequest) (*SprintResult, error) {
	prompt := prompts.BuildSprintPrompt(req.LayoutInstructions, req.SprintLengthDays, req.Velocity)

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("sprint generation completion: %w", err)
	}

	result, err := extract.Decode[SprintResult](raw)
	if err != nil {
		return nil, fmt.Errorf("decode sprint plan: %w", err)
	}
	if result.SprintStories == nil {
		result.SprintStories = []SprintStory{}
	}

	s.logger.Info("Sprint plan generated",
		zap.Int("stories", len(result.SprintStories)),
		zap.Int("over_under_capacity", result.OverUnderCapacity))

	return &result, nil
}

package prompts

import (
	"encoding/json"
	"time"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

const sprintSystemMessage = "You are an AI that converts dashboard prep & dev steps into Scrum sprint stories.  \n" +
	"Input:\n" +
	"- layout_instructions (Markdown)\n" +
	"- sprint_length_days\n" +
	"- velocity\n\n" +
	"Return only JSON with:\n" +
	"• sprint_stories: [ {title, points, description}, ... ]\n" +
	"• over_under_capacity: integer\n"

type sprintPayload struct {
	LayoutInstructions string `json:"layout_instructions"`
	SprintLengthDays   int    `json:"sprint_length_days"`
	Velocity           int    `json:"velocity"`
}

// BuildSprintPrompt composes the sprint planning prompt from generated
// layout instructions and capacity parameters.
func BuildSprintPrompt(layoutInstructions string, sprintLengthDays, velocity int) llm.Prompt {
	user, err := json.MarshalIndent(sprintPayload{
		LayoutInstructions: layoutInstructions,
		SprintLengthDays:   sprintLengthDays,
		Velocity:           velocity,
	}, "", "  ")
	if err != nil {
		user = []byte("{}")
	}

	return newPrompt(sprintSystemMessage, string(user), Budget{
		MaxTokens: 1200,
		Timeout:   10 * time.Minute,
	})
}

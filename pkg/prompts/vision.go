package prompts

import (
	"fmt"
	"time"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

var visionBudget = Budget{MaxTokens: 2000, Timeout: 15 * time.Minute}

// BuildImageAnalysisPrompt composes the vision prompt that turns a
// wireframe or screenshot into a structured layout description. The
// image itself travels separately through the gateway's vision path.
func BuildImageAnalysisPrompt(platform string) llm.Prompt {
	system := fmt.Sprintf(`You are an expert %s dashboard design analyst. Analyze the uploaded wireframe, sketch, or screenshot and provide a structured layout description.

Focus on identifying:
1. **Layout Structure**: Overall organization (grid, sections, positioning)
2. **Visual Components**: KPIs, charts, tables, slicers, filters, buttons
3. **Positioning**: Top, bottom, left, right, center areas
4. **Visual Types**: Bar charts, line charts, pie charts, tables, cards, etc.
5. **Text/Labels**: Any visible titles, labels, or annotations
6. **Relationships**: How components relate to each other

Provide a clear, structured description that can be used to generate specific %s implementation instructions.`,
		platform, platform)

	user := fmt.Sprintf(`Analyze this dashboard wireframe/sketch for %s.

Please provide:
1. A summary of the overall layout
2. Detailed description of each visual component and its position
3. Any text or labels you can identify
4. Suggested %s visual types for implementation

Be specific about positioning (top-left, center, bottom-right, etc.) and visual types.`,
		platform, platform)

	return newPrompt(system, user, visionBudget)
}

// BuildWireframeJSONPrompt composes the vision prompt that extracts a
// machine-readable section list instead of prose.
func BuildWireframeJSONPrompt(platform string) llm.Prompt {
	system := fmt.Sprintf(`You are an expert %s dashboard design analyst. Analyze the uploaded wireframe, sketch, or screenshot and return a machine-readable section list.

CRITICAL REQUIREMENTS:
- Return ONLY valid JSON, no explanations
- One entry per distinct visual component
- layout_type is one of: KPI, Chart, Table, Slicer
- section is one of: top, bottom, left, right, main

Expected JSON format:
{
  "sections": [
    {"layout_type": "KPI", "section": "top", "label": "Total revenue card"}
  ]
}`, platform)

	user := fmt.Sprintf("Identify every visual component in this dashboard wireframe/sketch for %s and return the JSON section list.", platform)

	return newPrompt(system, user, visionBudget)
}

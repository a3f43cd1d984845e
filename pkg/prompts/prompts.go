// Package prompts assembles task-specific completion prompts from a
// schema analysis plus optional business context, applying size-aware
// truncation so large models fit the token and time budget.
package prompts

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/analysis"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

// TaskKind identifies which pipeline task a prompt is built for.
type TaskKind string

const (
	TaskDataPrep         TaskKind = "data_prep"
	TaskLayoutGeneration TaskKind = "layout_generation"
	TaskSprintGeneration TaskKind = "sprint_generation"
	TaskKPIParse         TaskKind = "kpi_parse"
	TaskDictParse        TaskKind = "dict_parse"
	TaskModelGeneration  TaskKind = "model_generation"
	TaskImageAnalysis    TaskKind = "image_analysis"
	TaskWireframeJSON    TaskKind = "wireframe_json"
)

// DefaultTemperature is used for every task: low, favoring determinism
// over creativity.
const DefaultTemperature float32 = 0.1

// Truncation caps. The first N elements in original order are always
// preferred, and a visible marker records how many were dropped.
const (
	maxTablesComplex   = 15
	maxColumnsComplex  = 10
	maxKPIs            = 10
	maxKPIsComplex     = 5
	maxDictTables      = 3
	maxDictTablesCombo = 2
	maxDictColumns     = 5
	maxDictColumnsCplx = 3
)

// Budget pairs the token allowance with the request timeout. The bands
// trade a larger timeout for a single attempt: large-context generation
// is slow but mostly succeeds eventually.
type Budget struct {
	MaxTokens int
	Timeout   time.Duration
}

// BudgetFor returns the generation budget band for a complexity tier.
func BudgetFor(c analysis.Complexity) Budget {
	switch {
	case c >= analysis.Complex:
		return Budget{MaxTokens: 2500, Timeout: 15 * time.Minute}
	case c == analysis.Simple:
		return Budget{MaxTokens: 1500, Timeout: 10 * time.Minute}
	default:
		return Budget{MaxTokens: 1800, Timeout: 12 * time.Minute}
	}
}

// Options carries the caller-supplied modifiers for prompt assembly.
type Options struct {
	Platform           string
	CustomRequirements string
	Complexity         string // persona flag: beginner, intermediate, expert
	KPIs               []KPI
	Dictionary         DataDictionary
}

// persona returns the normalized persona flag, defaulting to
// intermediate.
func (o Options) persona() string {
	switch strings.ToLower(o.Complexity) {
	case "beginner":
		return "beginner"
	case "expert":
		return "expert"
	default:
		return "intermediate"
	}
}

// truncationMarker renders the "...and N more" annotation emitted
// whenever elements are dropped for size.
func truncationMarker(total, included int, noun string) string {
	return fmt.Sprintf("... and %d more %s\n", total-included, noun)
}

// newPrompt assembles the final Prompt value with the shared defaults.
func newPrompt(system, user string, budget Budget) llm.Prompt {
	return llm.Prompt{
		SystemMessage: system,
		UserMessage:   user,
		MaxTokens:     budget.MaxTokens,
		Timeout:       budget.Timeout,
		Temperature:   DefaultTemperature,
	}
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) > 0 {
		fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(items, ", "))
	}
}

// sortedKeys returns a map's keys in lexical order so that capped
// iteration is deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

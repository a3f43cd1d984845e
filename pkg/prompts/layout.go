package prompts

import (
	"encoding/json"
	"fmt"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/analysis"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/schema"
)

// layoutPayload is the JSON body sent as the user message for layout
// generation. Field presence is trimmed under higher complexity tiers
// so the model sees only what it needs.
type layoutPayload struct {
	SketchDescription any                          `json:"sketch_description"`
	CustomPrompt      string                       `json:"custom_prompt,omitempty"`
	ModelMetadata     any                          `json:"model_metadata"`
	KPIDefinitions    []KPI                        `json:"kpi_definitions,omitempty"`
	KPITruncated      string                       `json:"kpi_definitions_truncated,omitempty"`
	DataDictionary    map[string]map[string]string `json:"data_dictionary,omitempty"`
	DictTruncated     string                       `json:"data_dictionary_truncated,omitempty"`
}

type simplifiedModel struct {
	Tables    []simplifiedTable `json:"tables"`
	Truncated string            `json:"truncated,omitempty"`
}

type simplifiedTable struct {
	Name      string   `json:"name"`
	Columns   []string `json:"columns"`
	Truncated string   `json:"truncated,omitempty"`
}

// BuildLayoutPrompt composes the dashboard layout prompt. The sketch
// is whatever wireframe description the caller captured; it passes
// through untouched.
func BuildLayoutPrompt(model *schema.Model, sketch any, tier analysis.Complexity, opts Options) llm.Prompt {
	system := fmt.Sprintf(
		"You are an AI expert in BI dashboards for %s.  \n"+
			"**First**, under `## Measures`, list each measure or calculated column with exact formula (DAX or Tableau calc).  \n"+
			"**Then**, for each visual, output `## <VisualType>` and a numbered Markdown list:\n"+
			"1. Which visual to insert\n"+
			"2. Fields in Values/Axis/Legend/Tooltips\n"+
			"3. Sorts, filters, groupings\n"+
			"4. Suggested formatting\n\n"+
			"IMPORTANT: If KPI definitions are provided, prioritize these metrics in your dashboard layout. "+
			"If a data dictionary is provided, use the business context to make informed decisions about field usage and visualization types.\n\n"+
			"Return only valid JSON with keys:\n"+
			"• wireframe_json: the original sketch_description (as object)\n"+
			"• layout_instructions: the Markdown instructions",
		opts.Platform)

	isComplex := tier >= analysis.Complex

	payload := layoutPayload{
		SketchDescription: sketch,
		CustomPrompt:      opts.CustomRequirements,
	}

	if isComplex {
		payload.ModelMetadata = simplifyModel(model)
	} else {
		payload.ModelMetadata = model
	}

	if len(opts.KPIs) > 0 {
		limit := maxKPIs
		if isComplex {
			limit = maxKPIsComplex
		}
		kpis := opts.KPIs
		if len(kpis) > limit {
			kpis = kpis[:limit]
		}
		payload.KPIDefinitions = kpis
		payload.KPITruncated = truncationNote(len(opts.KPIs), limit, "KPIs")
	}

	if len(opts.Dictionary) > 0 {
		payload.DataDictionary, payload.DictTruncated = simplifyDictionary(opts.Dictionary, isComplex)
	}

	user, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// Marshalling plain structs and maps cannot fail; fall back to
		// an empty object just in case.
		user = []byte("{}")
	}

	return newPrompt(system, string(user), BudgetFor(tier))
}

// simplifyModel reduces a schema to table names and "name (type)"
// column strings, capped per table, to keep the payload small. Dropped
// tables and columns are annotated so the model knows the schema
// continues past what it sees.
func simplifyModel(model *schema.Model) simplifiedModel {
	simplified := simplifiedModel{Tables: []simplifiedTable{}}
	if model == nil {
		return simplified
	}

	tables := model.Tables
	if len(tables) > maxTablesComplex {
		tables = tables[:maxTablesComplex]
		simplified.Truncated = truncationNote(len(model.Tables), maxTablesComplex, "tables")
	}
	for _, table := range tables {
		st := simplifiedTable{Name: table.Name}
		columns := table.Columns
		if len(columns) > maxColumnsComplex {
			columns = columns[:maxColumnsComplex]
			st.Truncated = truncationNote(len(table.Columns), maxColumnsComplex, "columns")
		}
		for _, col := range columns {
			st.Columns = append(st.Columns, fmt.Sprintf("%s (%s)", col.Name, col.Type))
		}
		simplified.Tables = append(simplified.Tables, st)
	}
	return simplified
}

// truncationNote renders the "...and N more" annotation attached to a
// capped payload section, or "" when nothing was dropped.
func truncationNote(total, included int, noun string) string {
	if total <= included {
		return ""
	}
	return fmt.Sprintf("...and %d more %s", total-included, noun)
}

// simplifyDictionary keeps descriptions only, capped by table and
// column counts. Sorted iteration makes the cut deterministic. The
// second return value annotates dropped tables; dropped columns are
// annotated inside each entry under the "_truncated" key.
func simplifyDictionary(dict DataDictionary, isComplex bool) (map[string]map[string]string, string) {
	tableLimit := maxDictTables
	colLimit := maxDictColumns
	if isComplex {
		tableLimit = maxDictTablesCombo
		colLimit = maxDictColumnsCplx
	}

	out := make(map[string]map[string]string, tableLimit)
	for _, tableName := range sortedKeys(dict) {
		if len(out) >= tableLimit {
			break
		}
		columns := dict[tableName]
		entry := make(map[string]string, colLimit)
		included := 0
		for _, colName := range sortedKeys(columns) {
			if included >= colLimit {
				break
			}
			desc := columns[colName].Description
			if desc == "" {
				desc = "No description"
			}
			entry[colName] = desc
			included++
		}
		if note := truncationNote(len(columns), included, "columns"); note != "" {
			entry["_truncated"] = note
		}
		out[tableName] = entry
	}
	return out, truncationNote(len(dict), tableLimit, "tables")
}

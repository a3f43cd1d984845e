package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/analysis"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

// BuildDataPrepPrompt composes the data-preparation instruction prompt
// from a schema analysis plus optional business context. Construction
// never fails; upstream normalization already neutralized any data
// problems.
func BuildDataPrepPrompt(result *analysis.Result, opts Options) llm.Prompt {
	system := fmt.Sprintf(
		"You are a senior %s data engineer with 10+ years experience. "+
			"Generate SPECIFIC, actionable data preparation instructions. "+
			"Reference exact column names from the data model. "+
			"Include code snippets, validation steps, and troubleshooting tips. "+
			"Be precise about data types, null handling, and business rules. "+
			"Address each data quality issue identified in the analysis.",
		opts.Platform)

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert %s data preparation specialist. "+
		"Generate detailed, step-by-step data preparation instructions based on the following data model analysis:\n\n",
		opts.Platform)
	fmt.Fprintf(&b, "## Data Model Overview:\n- Total Tables: %d\n- Total Relationships: %d\n\n",
		result.TableCount, len(result.Relationships))
	b.WriteString("## Detailed Table Analysis:\n")

	isComplex := result.Complexity >= analysis.Complex

	tables := result.Tables
	if isComplex && len(tables) > maxTablesComplex {
		tables = tables[:maxTablesComplex]
	}

	columnCap := 25
	if isComplex {
		columnCap = maxColumnsComplex
	}

	for _, table := range tables {
		fmt.Fprintf(&b, "\n### Table: %s\n", table.Name)
		writeList(&b, "Primary Keys", table.PrimaryKeys)
		writeList(&b, "Foreign Keys", table.ForeignKeys)
		writeList(&b, "Date/Time Columns", capNames(table.DateColumns, columnCap))
		writeList(&b, "Numeric Columns", capNames(table.NumericColumns, columnCap))
		writeList(&b, "Text Columns", capNames(table.TextColumns, columnCap))
		writeList(&b, "Nullable Columns", capNames(table.NullableColumns, columnCap))
		if len(table.PotentialIssues) > 0 {
			fmt.Fprintf(&b, "- Issues Found: %s\n", strings.Join(table.PotentialIssues, "; "))
		}
	}
	if dropped := len(result.Tables) - len(tables); dropped > 0 {
		b.WriteString(truncationMarker(len(result.Tables), len(tables), "tables"))
	}

	if len(result.Relationships) > 0 {
		b.WriteString("\n## Relationships:\n")
		for _, rel := range result.Relationships {
			fmt.Fprintf(&b, "- %s.%s -> %s.%s (%s)\n",
				rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn, rel.Type)
		}
	}

	writeKPISection(&b, opts.KPIs, isComplex)
	writeDictionarySection(&b, opts.Dictionary, isComplex)

	if strings.TrimSpace(opts.CustomRequirements) != "" {
		fmt.Fprintf(&b, "\n## Additional Requirements:\n%s\n", opts.CustomRequirements)
	}

	b.WriteString(personaModifier(opts.persona()))
	b.WriteString(platformSection(opts.Platform))
	b.WriteString(outputRequirements)

	return newPrompt(system, b.String(), BudgetFor(result.Complexity))
}

// capNames truncates a name list to limit entries, appending the marker
// as a final pseudo-entry so the reader knows information was dropped.
func capNames(names []string, limit int) []string {
	if len(names) <= limit {
		return names
	}
	capped := make([]string, limit, limit+1)
	copy(capped, names[:limit])
	return append(capped, fmt.Sprintf("...and %d more", len(names)-limit))
}

func writeKPISection(b *strings.Builder, kpis []KPI, isComplex bool) {
	if len(kpis) == 0 {
		return
	}

	limit := maxKPIs
	if isComplex {
		limit = maxKPIsComplex
	}

	b.WriteString("\n## Key Performance Indicators (KPIs):\n")
	b.WriteString("Consider these KPIs when preparing data - ensure necessary calculations and groupings are available:\n")

	included := kpis
	if len(included) > limit {
		included = included[:limit]
	}
	for i, kpi := range included {
		name := kpi.Name
		if name == "" {
			name = "Unknown KPI"
		}
		desc := kpi.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(b, "%d. **%s**: %s\n", i+1, name, desc)
		if kpi.Formula != "" {
			fmt.Fprintf(b, "   Formula: %s\n", kpi.Formula)
		}
		if kpi.Target != "" {
			fmt.Fprintf(b, "   Target: %s\n", kpi.Target)
		}
	}
	if len(kpis) > limit {
		b.WriteString(truncationMarker(len(kpis), limit, "KPIs"))
	}
}

func writeDictionarySection(b *strings.Builder, dict DataDictionary, isComplex bool) {
	if len(dict) == 0 {
		return
	}

	tableLimit := maxDictTables
	colLimit := maxDictColumns
	if isComplex {
		tableLimit = maxDictTablesCombo
		colLimit = maxDictColumnsCplx
	}

	b.WriteString("\n## Data Dictionary (Business Context):\n")
	b.WriteString("Use this business context to enhance data preparation steps:\n")

	// Map iteration order is random; sort so truncation is stable.
	tableNames := make([]string, 0, len(dict))
	for name := range dict {
		tableNames = append(tableNames, name)
	}
	sort.Strings(tableNames)

	included := tableNames
	if len(included) > tableLimit {
		included = included[:tableLimit]
	}

	for _, tableName := range included {
		fmt.Fprintf(b, "\n**%s:**\n", tableName)

		columns := dict[tableName]
		colNames := make([]string, 0, len(columns))
		for name := range columns {
			colNames = append(colNames, name)
		}
		sort.Strings(colNames)

		shown := colNames
		if len(shown) > colLimit {
			shown = shown[:colLimit]
		}
		for _, colName := range shown {
			entry := columns[colName]
			desc := entry.Description
			if desc == "" {
				desc = "No description"
			}
			fmt.Fprintf(b, "- %s: %s\n", colName, desc)
			if entry.Type != "" {
				fmt.Fprintf(b, "  Type: %s\n", entry.Type)
			}
			if entry.Rules != "" {
				fmt.Fprintf(b, "  Business Rules: %s\n", entry.Rules)
			}
		}
		if len(colNames) > colLimit {
			b.WriteString("  " + truncationMarker(len(colNames), colLimit, "columns"))
		}
	}
	if len(tableNames) > tableLimit {
		b.WriteString(truncationMarker(len(tableNames), tableLimit, "tables"))
	}
}

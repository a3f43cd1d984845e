package prompts

import (
	"fmt"
	"time"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

const kpiParseSystemMessage = `You are an expert business analyst. Parse unstructured notes about KPIs and metrics into a structured JSON format.

CRITICAL REQUIREMENTS:
- Return ONLY valid JSON, no explanations
- Extract all mentioned KPIs, metrics, and performance indicators
- Infer reasonable descriptions if not explicitly stated
- Include formulas when mathematical expressions are mentioned
- Add targets when numbers or thresholds are mentioned
- Categorize KPIs when context suggests groupings

Expected JSON format:
{
  "kpi_list": [
    {
      "name": "KPI Name",
      "description": "Clear business description",
      "formula": "Mathematical calculation if mentioned",
      "target": "Target value if mentioned",
      "category": "Category if inferable",
      "frequency": "Reporting frequency if mentioned",
      "owner": "Business owner if mentioned"
    }
  ],
  "parsing_notes": "Brief summary of what was extracted and any assumptions made"
}

Examples of what to extract:
- "Sales revenue should be at least $2M monthly" -> KPI with target
- "Customer satisfaction score" -> KPI needing description
- "Profit margin = (Revenue - Costs) / Revenue" -> KPI with formula
- "Marketing metrics: CTR, conversion rate, CAC" -> Multiple KPIs in category
`

const dictParseSystemMessage = `You are an expert data architect. Parse unstructured notes about data fields and tables into a structured data dictionary JSON format.

CRITICAL REQUIREMENTS:
- Return ONLY valid JSON, no explanations
- Extract all mentioned tables, fields, and data elements
- Infer reasonable descriptions for fields when not explicit
- Include data types when mentioned or inferable
- Add business rules when constraints or validations are mentioned
- Group fields by table when structure is apparent

Expected JSON format:
{
  "data_dictionary": {
    "table_name": {
      "field_name": {
        "description": "Business meaning of the field",
        "type": "Data type if mentioned (string, int, date, etc.)",
        "rules": "Business rules or constraints if mentioned",
        "example": "Example values if provided"
      }
    }
  },
  "parsing_notes": "Brief summary of what was extracted and any assumptions made"
}

Examples of what to extract:
- "Customer table has customer_id, name, email" -> Table with 3 fields
- "Sales amount must be positive number" -> Field with business rule
- "Order date format: YYYY-MM-DD" -> Field with type and format rule
- "Product categories: Electronics, Clothing, Books" -> Field with example values
`

var notesBudget = Budget{MaxTokens: 2000, Timeout: 10 * time.Minute}

// BuildKPIParsePrompt composes the prompt that turns free-form meeting
// notes into structured KPI definitions.
func BuildKPIParsePrompt(notesText string) llm.Prompt {
	user := fmt.Sprintf("Parse these unstructured notes into structured KPI definitions:\n\n%s\n\n"+
		"Extract all performance indicators, metrics, and KPIs mentioned. "+
		"Include formulas, targets, and business context where available.", notesText)
	return newPrompt(kpiParseSystemMessage, user, notesBudget)
}

// BuildDictParsePrompt composes the prompt that turns free-form notes
// into a structured data dictionary. tableContext is optional extra
// detail about the table structure.
func BuildDictParsePrompt(notesText, tableContext string) llm.Prompt {
	contextBlock := ""
	if tableContext != "" {
		contextBlock = fmt.Sprintf("\n\nAdditional context about tables/structure:\n%s", tableContext)
	}
	user := fmt.Sprintf("Parse these unstructured notes into a structured data dictionary:\n\n%s%s\n\n"+
		"Extract all data fields, tables, and business rules mentioned. "+
		"Include data types, constraints, and business context where available.", notesText, contextBlock)
	return newPrompt(dictParseSystemMessage, user, notesBudget)
}

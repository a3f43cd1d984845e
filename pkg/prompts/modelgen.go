package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

const modelGenSystemMessage = `You are a data modeling expert. Convert SQL DDL to a clean JSON data model.

CRITICAL REQUIREMENTS:
- Return ONLY valid JSON, no explanations
- Use simple types: 'string', 'int', 'date', 'decimal', 'boolean'
- Extract ALL table definitions provided
- Include relationships from foreign key constraints
- Handle Salesforce-style field names (with __c)

Expected JSON format:
{
  "tables": [
    {
      "name": "TABLE_NAME",
      "columns": [
        {"name": "COLUMN_NAME", "type": "string", "nullable": true, "is_primary_key": false, "is_foreign_key": false}
      ]
    }
  ],
  "relationships": [
    {"from": "table1", "to": "table2", "from_column": "col1", "to_column": "col2", "type": "many-to-one"}
  ]
}`

const relationshipsSystemMessage = "Extract relationships from SQL. Return JSON: {'relationships': [...]}"

// BuildModelGenPrompt composes the single-call DDL conversion prompt.
// Token allowance scales with input size between 1500 and 4000.
func BuildModelGenPrompt(tablesSQL []string, relationshipsSQL string, totalSize int) llm.Prompt {
	var b strings.Builder
	b.WriteString("\n\n--- TABLE DEFINITIONS ---\n")
	b.WriteString(strings.Join(tablesSQL, "\n\n"))
	if strings.TrimSpace(relationshipsSQL) != "" {
		b.WriteString("\n\n--- RELATIONSHIPS ---\n")
		b.WriteString(relationshipsSQL)
	}

	tokens := totalSize / 3
	if tokens < 1500 {
		tokens = 1500
	}
	if tokens > 4000 {
		tokens = 4000
	}

	return newPrompt(modelGenSystemMessage, b.String(), Budget{
		MaxTokens: tokens,
		Timeout:   2 * time.Minute,
	})
}

// BuildDDLChunkPrompt composes the compact per-chunk conversion prompt
// used when the schema is split across multiple calls.
func BuildDDLChunkPrompt(ddls []string, chunkNum, totalChunks int) llm.Prompt {
	system := fmt.Sprintf(`Convert SQL DDL chunk %d/%d to JSON.
Return ONLY valid JSON with tables array. Use types: string, int, date, decimal.
Format: {"tables": [{"name": "table", "columns": [{"name": "col", "type": "string", "nullable": true, "is_primary_key": false, "is_foreign_key": false}]}]}`,
		chunkNum, totalChunks)

	user := "Tables:\n" + strings.Join(ddls, "\n\n")

	return newPrompt(system, user, Budget{
		MaxTokens: 2000,
		Timeout:   10 * time.Minute,
	})
}

// BuildRelationshipsPrompt composes the minimal relationship extraction
// prompt run after chunked table processing.
func BuildRelationshipsPrompt(relationshipsSQL string) llm.Prompt {
	return newPrompt(relationshipsSystemMessage, relationshipsSQL, Budget{
		MaxTokens: 800,
		Timeout:   10 * time.Minute,
	})
}

// Package analysis derives a per-table, per-column view of a canonical
// schema: column categorization, heuristic data-quality issues, and a
// coarse complexity classification that drives prompt sizing.
package analysis

import (
	"fmt"
	"strings"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/schema"
)

// ColumnCategory is the single category assigned to every column.
type ColumnCategory int

const (
	CategoryUnclassified ColumnCategory = iota
	CategoryDate
	CategoryNumeric
	CategoryText
)

var numericTypes = []string{"int", "float", "decimal", "numeric", "money", "currency"}
var textTypes = []string{"varchar", "char", "text", "string", "nvarchar"}
var monetaryNames = []string{"amount", "price", "cost", "salary"}

// ClassifyColumn assigns exactly one category using ordered substring
// rules over the lower-cased type string: date wins over numeric, which
// wins over text. Anything else is unclassified; callers render
// unclassified columns as text.
func ClassifyColumn(colType string) ColumnCategory {
	t := strings.ToLower(colType)
	if strings.Contains(t, "date") || strings.Contains(t, "time") || strings.Contains(t, "timestamp") {
		return CategoryDate
	}
	for _, n := range numericTypes {
		if strings.Contains(t, n) {
			return CategoryNumeric
		}
	}
	for _, n := range textTypes {
		if strings.Contains(t, n) {
			return CategoryText
		}
	}
	return CategoryUnclassified
}

// TableAnalysis is the derived view of a single table.
type TableAnalysis struct {
	Name            string          `json:"name"`
	Columns         []schema.Column `json:"columns"`
	PrimaryKeys     []string        `json:"primary_keys"`
	ForeignKeys     []string        `json:"foreign_keys"`
	DateColumns     []string        `json:"date_columns"`
	NumericColumns  []string        `json:"numeric_columns"`
	TextColumns     []string        `json:"text_columns"`
	NullableColumns []string        `json:"nullable_columns"`
	PotentialIssues []string        `json:"potential_issues"`
}

// Result is the full derived analysis for a model. It is recomputed per
// request and never persisted.
type Result struct {
	Tables        []TableAnalysis       `json:"tables"`
	Relationships []schema.Relationship `json:"relationships"`
	TableCount    int                   `json:"table_count"`
	ColumnCount   int                   `json:"column_count"`
	Complexity    Complexity            `json:"complexity"`
}

// Analyze walks a canonical model and derives the analysis result. It
// never fails: sparse or empty input yields an equally sparse result.
func Analyze(m *schema.Model, thresholds Thresholds) *Result {
	result := &Result{}
	if m == nil {
		m = &schema.Model{}
	}

	for _, table := range m.Tables {
		ta := TableAnalysis{Name: table.Name, Columns: table.Columns}

		for _, col := range table.Columns {
			lowerName := strings.ToLower(col.Name)
			lowerType := strings.ToLower(col.Type)

			// A column marked as both PK and FK appears in both lists.
			if col.IsPrimaryKey {
				ta.PrimaryKeys = append(ta.PrimaryKeys, col.Name)
			}
			if col.IsForeignKey {
				ta.ForeignKeys = append(ta.ForeignKeys, col.Name)
			}

			switch ClassifyColumn(col.Type) {
			case CategoryDate:
				ta.DateColumns = append(ta.DateColumns, col.Name)
			case CategoryNumeric:
				ta.NumericColumns = append(ta.NumericColumns, col.Name)
			case CategoryText:
				ta.TextColumns = append(ta.TextColumns, col.Name)
			}

			if col.Nullable {
				ta.NullableColumns = append(ta.NullableColumns, col.Name)
			}

			if strings.Contains(lowerName, "id") && col.Nullable {
				ta.PotentialIssues = append(ta.PotentialIssues,
					fmt.Sprintf("ID column '%s' allows nulls", col.Name))
			}
			if containsAny(lowerName, monetaryNames) && strings.Contains(lowerType, "varchar") {
				ta.PotentialIssues = append(ta.PotentialIssues,
					fmt.Sprintf("Monetary column '%s' stored as text", col.Name))
			}
			if strings.Contains(lowerName, "date") && strings.Contains(lowerType, "varchar") {
				ta.PotentialIssues = append(ta.PotentialIssues,
					fmt.Sprintf("Date column '%s' stored as text", col.Name))
			}
		}

		if len(ta.PrimaryKeys) == 0 {
			ta.PotentialIssues = append(ta.PotentialIssues, "no primary key defined")
		}

		result.Tables = append(result.Tables, ta)
		result.ColumnCount += len(table.Columns)
	}

	result.Relationships = m.Relationships
	result.TableCount = len(m.Tables)
	result.Complexity = classify(result.TableCount, result.ColumnCount, len(m.Relationships), thresholds)

	return result
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

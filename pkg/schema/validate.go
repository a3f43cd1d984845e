package schema

import (
	"fmt"
	"strings"
)

// ValidationReport summarizes structural problems found in a model.
// Warnings are advisory; Errors make the report invalid but nothing in
// the pipeline refuses to proceed because of them.
type ValidationReport struct {
	Valid    bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// Validate checks a normalized model for missing primary keys, nullable
// ID columns, and relationships that reference tables that do not exist.
func Validate(m *Model) ValidationReport {
	report := ValidationReport{Valid: true}

	if m == nil || len(m.Tables) == 0 {
		report.Valid = false
		report.Errors = append(report.Errors, "no data model provided")
		return report
	}

	names := make(map[string]bool, len(m.Tables))
	for _, table := range m.Tables {
		names[table.Name] = true

		hasPK := false
		for _, col := range table.Columns {
			if col.IsPrimaryKey {
				hasPK = true
			}
			if strings.Contains(strings.ToLower(col.Name), "id") && col.Nullable {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("ID column '%s.%s' allows nulls", table.Name, col.Name))
			}
		}
		if !hasPK {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Table '%s' has no primary key defined", table.Name))
		}
	}

	for _, rel := range m.Relationships {
		if !names[rel.FromTable] {
			report.Errors = append(report.Errors,
				fmt.Sprintf("Relationship references non-existent table: %s", rel.FromTable))
		}
		if !names[rel.ToTable] {
			report.Errors = append(report.Errors,
				fmt.Sprintf("Relationship references non-existent table: %s", rel.ToTable))
		}
	}

	if len(report.Errors) > 0 {
		report.Valid = false
	}
	return report
}

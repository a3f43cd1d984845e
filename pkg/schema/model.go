// Package schema defines the canonical in-memory representation of a
// user's data model and the normalizer that produces it from the loosely
// typed payloads the serving layer accepts.
package schema

// Column is a single normalized column definition.
type Column struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Nullable     bool   `json:"nullable"`
	IsPrimaryKey bool   `json:"is_primary_key"`
	IsForeignKey bool   `json:"is_foreign_key"`
}

// Table is a named, ordered collection of columns.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Relationship links two tables by name. The references are weak: a
// relationship may point at a table that does not exist in the model,
// which Validate reports but nothing treats as fatal.
type Relationship struct {
	FromTable  string `json:"from"`
	ToTable    string `json:"to"`
	FromColumn string `json:"from_column"`
	ToColumn   string `json:"to_column"`
	Type       string `json:"type"`
}

// Model is the canonical schema produced by the Normalizer.
type Model struct {
	Tables        []Table        `json:"tables"`
	Relationships []Relationship `json:"relationships"`
}

// TableNames returns the names of all tables in order.
func (m *Model) TableNames() []string {
	names := make([]string, 0, len(m.Tables))
	for _, t := range m.Tables {
		names = append(names, t.Name)
	}
	return names
}

// ColumnCount returns the total number of columns across all tables.
func (m *Model) ColumnCount() int {
	total := 0
	for _, t := range m.Tables {
		total += len(t.Columns)
	}
	return total
}

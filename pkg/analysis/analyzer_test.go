package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/schema"
)

func TestClassifyColumn(t *testing.T) {
	tests := []struct {
		colType  string
		expected ColumnCategory
	}{
		{"date", CategoryDate},
		{"DATETIME", CategoryDate},
		{"timestamp with time zone", CategoryDate},
		{"int", CategoryNumeric},
		{"BIGINT", CategoryNumeric},
		{"decimal(10,2)", CategoryNumeric},
		{"money", CategoryNumeric},
		{"varchar(255)", CategoryText},
		{"NVARCHAR", CategoryText},
		{"string", CategoryText},
		{"geometry", CategoryUnclassified},
		{"", CategoryUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.colType, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyColumn(tt.colType))
		})
	}
}

// The date rule wins over numeric and text for ambiguous types like
// "datetime2" or "timestamp", so every column lands in exactly one
// category.
func TestClassifyColumnPrecedence(t *testing.T) {
	assert.Equal(t, CategoryDate, ClassifyColumn("datetime2"))
	assert.Equal(t, CategoryDate, ClassifyColumn("timestamptz"))
	// "character varying" contains both "char" and "varying".
	assert.Equal(t, CategoryText, ClassifyColumn("character varying"))
}

func TestAnalyzeDerivesTableView(t *testing.T) {
	model := &schema.Model{
		Tables: []schema.Table{
			{Name: "orders", Columns: []schema.Column{
				{Name: "order_id", Type: "int", IsPrimaryKey: true, IsForeignKey: true},
				{Name: "order_date", Type: "date"},
				{Name: "amount", Type: "varchar", Nullable: true},
				{Name: "note", Type: "text", Nullable: true},
			}},
		},
		Relationships: []schema.Relationship{
			{FromTable: "orders", ToTable: "customers"},
		},
	}

	result := Analyze(model, DefaultThresholds())

	require.Len(t, result.Tables, 1)
	ta := result.Tables[0]

	// PK and FK flags are independent: one column can be both.
	assert.Equal(t, []string{"order_id"}, ta.PrimaryKeys)
	assert.Equal(t, []string{"order_id"}, ta.ForeignKeys)

	assert.Equal(t, []string{"order_date"}, ta.DateColumns)
	assert.Equal(t, []string{"order_id"}, ta.NumericColumns)
	assert.Equal(t, []string{"amount", "note"}, ta.TextColumns)
	assert.Equal(t, []string{"amount", "note"}, ta.NullableColumns)

	assert.Contains(t, ta.PotentialIssues, "Monetary column 'amount' stored as text")
	assert.Equal(t, 1, result.TableCount)
	assert.Equal(t, 4, result.ColumnCount)
	assert.Len(t, result.Relationships, 1)
}

func TestAnalyzeIssueHeuristics(t *testing.T) {
	model := &schema.Model{
		Tables: []schema.Table{
			{Name: "events", Columns: []schema.Column{
				{Name: "event_id", Type: "int", Nullable: true},
				{Name: "event_date", Type: "varchar"},
			}},
		},
	}

	result := Analyze(model, DefaultThresholds())
	issues := result.Tables[0].PotentialIssues

	assert.Contains(t, issues, "ID column 'event_id' allows nulls")
	assert.Contains(t, issues, "Date column 'event_date' stored as text")
	assert.Contains(t, issues, "no primary key defined")
}

func TestAnalyzeNeverFails(t *testing.T) {
	result := Analyze(nil, DefaultThresholds())
	require.NotNil(t, result)
	assert.Zero(t, result.TableCount)
	assert.Equal(t, Simple, result.Complexity)

	result = Analyze(&schema.Model{}, DefaultThresholds())
	require.NotNil(t, result)
	assert.Zero(t, result.ColumnCount)
}

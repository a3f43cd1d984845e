package services

import (
	"fmt"
	"strings"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/analysis"
)

// appendValidationSteps attaches a validation and QA appendix to
// generated data-prep instructions, specialized to the analyzed model.
func appendValidationSteps(instructions string, result *analysis.Result) string {
	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString(`

## Data Validation & Quality Assurance

### Pre-Load Baseline Metrics:
1. **Document Source System Counts:**
   - Record row counts from each source table
   - Note any known data quality issues
   - Establish expected ranges based on business knowledge

### Post-Transformation Validation:`)

	for _, table := range result.Tables {
		fmt.Fprintf(&b, "\n\n**%s Table Validation:**", table.Name)

		for _, pk := range table.PrimaryKeys {
			fmt.Fprintf(&b, "\n   - `%s`: Verify uniqueness (0 duplicates expected)", pk)
			fmt.Fprintf(&b, "\n   - `%s`: Confirm no null values", pk)
		}
		for _, col := range table.DateColumns {
			fmt.Fprintf(&b, "\n   - `%s`: Check date range validity (no future dates unless business rule allows)", col)
			fmt.Fprintf(&b, "\n   - `%s`: Verify date format consistency", col)
		}
		for _, col := range table.NumericColumns {
			if isMonetaryName(col) {
				fmt.Fprintf(&b, "\n   - `%s`: Verify all values are positive (or handle negatives per business rules)", col)
				fmt.Fprintf(&b, "\n   - `%s`: Check for outliers that may indicate data quality issues", col)
			}
		}
		if len(table.PotentialIssues) > 0 {
			fmt.Fprintf(&b, "\n   - **Data Quality Issues Fixed**: Verify the following issues are resolved:\n     %s",
				strings.Join(table.PotentialIssues, ", "))
		}
	}

	b.WriteString(`

### Relationship Integrity Checks:
3. **Foreign Key Validation:**
   - Verify all foreign key relationships have matching records
   - Check for and document any orphaned records
   - Validate referential integrity constraints

### Business Logic Validation:
4. **Domain-Specific Checks:**
   - Apply business-specific validation rules
   - Cross-check calculated fields against known totals
   - Verify aggregations match source system reports

### Performance Validation:
5. **Query Performance Testing:**
   - Test key report queries for acceptable response times
   - Monitor data refresh duration
   - Validate memory usage during processing

6. **Data Refresh Testing:**
   - Test incremental load scenarios (if applicable)
   - Verify historical data preservation
   - Check handling of late-arriving data

### Final Sign-Off Checklist:
- [ ] All source tables loaded successfully
- [ ] No critical data quality issues remain
- [ ] All relationships function correctly
- [ ] Sample reports produce expected results
- [ ] Performance meets business requirements
- [ ] Data refresh completes within acceptable timeframe
`)

	return b.String()
}

func isMonetaryName(col string) bool {
	lower := strings.ToLower(col)
	for _, word := range []string{"amount", "price", "cost", "salary"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

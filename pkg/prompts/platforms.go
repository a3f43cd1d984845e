package prompts

import "strings"

// Platform-specific instruction sections for data-prep prompts. An
// unrecognized platform gets the generic template, never an error.

const powerBISection = `
## Generate Power BI Power Query M Instructions:

CRITICAL REQUIREMENT: For EVERY data transformation, provide BOTH methods:
1. **M Code Solution** - Complete M code that can be used in Advanced Editor
2. **UI/Toolbar Solution** - Step-by-step clicks using Power Query Editor interface

Now provide SPECIFIC instructions for:

1. **Data Source Connection:**
   - Connection steps via UI (Get Data -> Select source -> Configure)
   - M code for connection string
   - Authentication requirements for both methods

2. **Column-Specific Transformations:**
   For EACH column issue identified above, provide BOTH M code AND UI steps:
   - **Date Columns**: change type, parse dates, handle errors; UI via Right-click -> Change Type -> Date/Time
   - **Numeric Columns**: type conversion, replace values, handle nulls; UI via Transform tab -> Data Type -> Decimal/Currency
   - **Text Columns**: Text.Trim, Text.Proper, Text.Clean; UI via Transform tab -> Format -> Trim/Clean/Capitalize

3. **Data Quality Fixes:**
   For EACH issue, show BOTH approaches:
   - **Remove Nulls**: Table.SelectRows with null check, or filter dropdown -> uncheck null/blank
   - **Remove Duplicates**: Table.Distinct with key columns, or Home tab -> Remove Rows -> Remove Duplicates
   - **Replace Values**: Table.ReplaceValue function, or Right-click -> Replace Values

4. **Joins and Merges:**
   - M code: Table.NestedJoin or Table.Join
   - UI: Home tab -> Combine -> Merge Queries

5. **Performance Optimization:**
   - Query folding best practices
   - When to use Table.Buffer
   - Native query vs UI transformations

Provide complete, copy-paste ready M code AND detailed UI navigation for EVERY transformation.
`

const tableauSection = `
## Generate Tableau Prep/Desktop Instructions:

CRITICAL REQUIREMENT: For EVERY data transformation, provide BOTH methods:
1. **Calculated Field/Custom SQL** - Complete formulas/code
2. **UI/Interface Solution** - Step-by-step clicks using Tableau Prep Builder or Desktop

Now provide SPECIFIC instructions for:

1. **Data Connection:**
   - UI: Connect pane -> Select data source -> Configure options
   - Custom SQL option when needed
   - Authentication setup for both methods

2. **Column-Specific Transformations:**
   For EACH column issue, provide BOTH calculated fields AND UI steps:
   - **Date Columns**: DATEPARSE, DATE functions; UI via Right-click -> Change Data Type -> Date options
   - **Numeric Columns**: FLOAT, INT, ROUND functions; UI via Right-click -> Change Data Type -> Number options
   - **Text Columns**: TRIM, UPPER, LOWER, SPLIT; UI via Data pane -> Create Calculated Field

3. **Data Cleaning in Tableau Prep:**
   - **Remove Nulls**: ISNULL() filter calculations, or click column -> Filter -> Exclude nulls
   - **Clean Steps**: custom clean operations, or Add Clean Step -> Select cleaning options
   - **Pivot/Unpivot**: pivot calculations, or Add Pivot Step -> Configure

4. **Joins and Relationships:**
   - Join calculations and SQL
   - UI: Data Source tab -> Drag tables -> Configure joins

5. **Performance Optimization:**
   - When to use extracts vs live
   - Context filters setup
   - Data engine optimization

Provide complete, copy-paste ready formulas AND detailed UI navigation for EVERY transformation.
`

const genericSection = `
## Generate Generic Data Preparation Instructions:

Provide platform-agnostic instructions that cover:
1. Data loading and connection
2. Column-specific transformations for each identified issue
3. Data quality assurance
4. Relationship establishment
5. Performance considerations

Focus on the logical steps that can be adapted to any BI platform.
`

const outputRequirements = `
## Output Requirements:
- Use clear markdown formatting with headers and numbered lists
- Reference SPECIFIC column names from the data model above
- Include code snippets or platform-specific syntax where applicable
- Provide validation steps to verify data quality
- Include troubleshooting tips for common issues
- Estimate time for each major step
- Address each potential issue identified in the analysis
- Include business impact of data quality issues if not addressed
`

// platformSection returns the platform-specific block for a data-prep
// prompt.
func platformSection(platform string) string {
	switch strings.ToLower(platform) {
	case "power bi":
		return powerBISection
	case "tableau":
		return tableauSection
	default:
		return genericSection
	}
}

package prompts

// KPI is a caller-supplied key-performance-indicator definition. Only
// Name and Description are required; the rest enrich the prompt when
// present.
type KPI struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Formula     string `json:"formula,omitempty"`
	Target      string `json:"target,omitempty"`
	Category    string `json:"category,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

// DictEntry documents one column in the business data dictionary.
type DictEntry struct {
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
	Example     string `json:"example,omitempty"`
	Rules       string `json:"rules,omitempty"`
}

// DataDictionary maps table name to column name to its documentation.
// Owned by the caller; the assembler treats it as immutable input.
type DataDictionary map[string]map[string]DictEntry

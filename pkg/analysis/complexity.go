package analysis

import "fmt"

// Complexity classifies a data model's size. The tiers are ordered:
// growing table, column, or relationship counts never decrease the tier.
type Complexity int

const (
	Simple Complexity = iota
	Moderate
	Complex
	VeryComplex
)

func (c Complexity) String() string {
	switch c {
	case Simple:
		return "Simple"
	case Moderate:
		return "Moderate"
	case Complex:
		return "Complex"
	case VeryComplex:
		return "Very Complex"
	default:
		return "Unknown"
	}
}

// Thresholds holds the tier boundaries. Deployments can tune them via
// configuration; DefaultThresholds matches the tuned production values.
type Thresholds struct {
	SimpleTables        int `yaml:"simple_tables" env:"COMPLEXITY_SIMPLE_TABLES" env-default:"3"`
	SimpleColumns       int `yaml:"simple_columns" env:"COMPLEXITY_SIMPLE_COLUMNS" env-default:"20"`
	SimpleRelationships int `yaml:"simple_relationships" env:"COMPLEXITY_SIMPLE_RELATIONSHIPS" env-default:"3"`

	ModerateTables        int `yaml:"moderate_tables" env:"COMPLEXITY_MODERATE_TABLES" env-default:"10"`
	ModerateColumns       int `yaml:"moderate_columns" env:"COMPLEXITY_MODERATE_COLUMNS" env-default:"100"`
	ModerateRelationships int `yaml:"moderate_relationships" env:"COMPLEXITY_MODERATE_RELATIONSHIPS" env-default:"10"`

	VeryComplexTables  int `yaml:"very_complex_tables" env:"COMPLEXITY_VERY_COMPLEX_TABLES" env-default:"20"`
	VeryComplexColumns int `yaml:"very_complex_columns" env:"COMPLEXITY_VERY_COMPLEX_COLUMNS" env-default:"200"`
}

// DefaultThresholds returns the standard tier boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SimpleTables:          3,
		SimpleColumns:         20,
		SimpleRelationships:   3,
		ModerateTables:        10,
		ModerateColumns:       100,
		ModerateRelationships: 10,
		VeryComplexTables:     20,
		VeryComplexColumns:    200,
	}
}

// Validate rejects threshold sets where the tiers are not nested.
func (t Thresholds) Validate() error {
	if t.SimpleTables > t.ModerateTables || t.SimpleColumns > t.ModerateColumns ||
		t.SimpleRelationships > t.ModerateRelationships {
		return fmt.Errorf("simple tier thresholds must not exceed moderate tier thresholds")
	}
	if t.ModerateTables > t.VeryComplexTables || t.ModerateColumns > t.VeryComplexColumns {
		return fmt.Errorf("moderate tier thresholds must not exceed very complex tier thresholds")
	}
	return nil
}

// classify assigns a tier from raw counts. VeryComplex is checked first
// so the widest models always land in the chunking tier.
func classify(tables, columns, relationships int, t Thresholds) Complexity {
	if t.SimpleTables == 0 {
		t = DefaultThresholds()
	}
	switch {
	case tables > t.VeryComplexTables || columns > t.VeryComplexColumns:
		return VeryComplex
	case tables <= t.SimpleTables && columns <= t.SimpleColumns && relationships <= t.SimpleRelationships:
		return Simple
	case tables <= t.ModerateTables && columns <= t.ModerateColumns && relationships <= t.ModerateRelationships:
		return Moderate
	default:
		return Complex
	}
}

package schema

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// Normalizer converts heterogeneous raw data-model payloads into a
// canonical Model. It never fails: malformed input degrades to an empty
// but valid model, with anomalies logged for the caller to observe.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logger.Named("schema")}
}

// Normalize accepts a map, a JSON-encoded string or []byte, or nil, and
// returns a best-effort canonical Model. Column entries may be bare
// strings (name only) or attribute maps; table and column keys may use
// either the short or the long field-name convention.
func (n *Normalizer) Normalize(raw any) *Model {
	model := &Model{}

	root := asMap(raw)
	if root == nil {
		if raw != nil {
			n.logger.Warn("data model payload is not interpretable, returning empty model")
		}
		return model
	}

	for _, entry := range asList(root["tables"]) {
		tableMap := asMap(entry)
		if tableMap == nil {
			n.logger.Warn("skipping table entry that is not an object")
			continue
		}

		table := Table{
			Name: firstString(tableMap, "name", "table_name"),
		}
		for _, colEntry := range asList(tableMap["columns"]) {
			table.Columns = append(table.Columns, normalizeColumn(colEntry))
		}
		model.Tables = append(model.Tables, table)
	}

	for _, entry := range asList(root["relationships"]) {
		relMap := asMap(entry)
		if relMap == nil {
			n.logger.Warn("skipping relationship entry that is not an object")
			continue
		}
		model.Relationships = append(model.Relationships, Relationship{
			FromTable:  firstString(relMap, "from", "from_table"),
			ToTable:    firstString(relMap, "to", "to_table"),
			FromColumn: firstString(relMap, "from_column"),
			ToColumn:   firstString(relMap, "to_column"),
			Type:       firstString(relMap, "type", "relationship_type"),
		})
	}

	return model
}

// normalizeColumn resolves the two column conventions: a bare string is
// a name-only column; a map carries full attributes with defaults for
// anything absent.
func normalizeColumn(entry any) Column {
	if name, ok := entry.(string); ok {
		return Column{Name: name, Type: "string", Nullable: true}
	}

	colMap := asMap(entry)
	if colMap == nil {
		return Column{Type: "string", Nullable: true}
	}

	colType := strings.ToLower(firstString(colMap, "type", "data_type"))
	if colType == "" {
		colType = "string"
	}

	return Column{
		Name:         firstString(colMap, "name", "column_name"),
		Type:         colType,
		Nullable:     boolOrDefault(colMap, "nullable", true),
		IsPrimaryKey: boolOrDefault(colMap, "is_primary_key", false),
		IsForeignKey: boolOrDefault(colMap, "is_foreign_key", false),
	}
}

// asMap interprets a value as a JSON object, accepting string-encoded
// JSON as well. Returns nil when the value cannot be interpreted.
func asMap(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return t
	case string:
		return decodeMap([]byte(t))
	case []byte:
		return decodeMap(t)
	case json.RawMessage:
		return decodeMap(t)
	default:
		return nil
	}
}

func decodeMap(data []byte) map[string]any {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// asList interprets a value as a JSON array, accepting string-encoded
// JSON as well. Returns nil when the value cannot be interpreted.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case string:
		return decodeList([]byte(t))
	case []byte:
		return decodeList(t)
	default:
		return nil
	}
}

func decodeList(data []byte) []any {
	var l []any
	if err := json.Unmarshal(data, &l); err != nil {
		return nil
	}
	return l
}

// firstString returns the first non-empty string value among the given
// keys. Key order encodes precedence between naming conventions.
func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func boolOrDefault(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyResponse is returned when the raw text is empty or whitespace.
// This is the only failure mode of Normalize; callers must treat it as a
// hard failure of the upstream completion.
var ErrEmptyResponse = errors.New("empty response from completion service")

// Strategy identifies which rung of the fallback ladder produced a result.
type Strategy string

const (
	StrategyStrict       Strategy = "strict"
	StrategyField        Strategy = "field_extraction"
	StrategyBraceSalvage Strategy = "brace_salvage"
	StrategyPassthrough  Strategy = "passthrough"
)

// Result is the outcome of normalizing one response. Object is non-nil
// when a structured decode succeeded; Text always carries the value for
// the requested field or the degraded free-form content.
type Result struct {
	Object   map[string]any
	Text     string
	Strategy Strategy
}

// escapeRemnantPattern strips stray single-letter backslash escapes the
// model sometimes leaves behind after manual unescaping.
var escapeRemnantPattern = regexp.MustCompile(`\\[a-z]`)

// mojibakePattern removes glyph artifacts observed in model output.
var mojibakePattern = regexp.MustCompile(`[∗∧¨◊]+`)

// Normalize runs the fallback ladder over one raw response. The field
// argument names the JSON key whose value the caller ultimately wants
// (e.g. "layout_instructions"); it drives the field-extraction rung and
// the brace-salvage shape check. For any non-empty input Normalize
// returns a usable Result; quality degrades down the ladder but the
// function never fails except for empty input.
func Normalize(raw string, field string) (Result, error) {
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptyResponse
	}

	stripped := StripFences(raw)

	// Strict parse of the fence-stripped text.
	var obj map[string]any
	if err := json.Unmarshal([]byte(stripped), &obj); err == nil && obj != nil {
		return Result{
			Object:   obj,
			Text:     stringField(obj, field),
			Strategy: StrategyStrict,
		}, nil
	}

	// Ordered field extraction from malformed surrounding JSON.
	if value, ok := ExtractField(stripped, field); ok {
		return Result{Text: value, Strategy: StrategyField}, nil
	}

	// Brace salvage: decode the first-{ to last-} substring and accept
	// it only if it carries the expected key.
	if salvaged, ok := braceSalvage(raw, field); ok {
		return Result{
			Object:   salvaged,
			Text:     stringField(salvaged, field),
			Strategy: StrategyBraceSalvage,
		}, nil
	}

	// Passthrough: strip JSON scaffolding and hand back free-form text.
	return Result{Text: stripScaffolding(stripped), Strategy: StrategyPassthrough}, nil
}

// fieldPatterns builds the ordered extractor list for a field. First
// match wins; the order is deliberate and mirrors how often each
// malformation shows up in practice.
func fieldPatterns(field string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(field)
	patterns := []string{
		// Double-quoted value with escaped quotes.
		`"` + quoted + `":\s*"([^"]*(?:\\.[^"]*)*)"`,
		// Single-quoted variant.
		`'` + quoted + `':\s*'([^']*(?:\\.[^']*)*)'`,
		// Multiline greedy variant terminated by , or }.
		`(?s)"` + quoted + `":\s*"((?:[^"\\]|\\.)*)"\s*[,}]`,
		// Unquoted value.
		`"` + quoted + `":\s*([^,}]+)`,
	}
	regexps := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		regexps = append(regexps, regexp.MustCompile(p))
	}
	return regexps
}

// alternateFields maps a requested field to the alternate key names
// models substitute for it.
var alternateFields = map[string][]string{
	"layout_instructions": {"instructions", "dashboard_instructions"},
}

// ExtractField pulls a named field's value out of malformed JSON using
// the ordered extractor chain, then tries known alternate field names.
// The returned value is unescaped and de-artifacted.
func ExtractField(content, field string) (string, bool) {
	names := append([]string{field}, alternateFields[field]...)
	for _, name := range names {
		for _, pattern := range fieldPatterns(name) {
			if m := pattern.FindStringSubmatch(content); m != nil {
				return Unescape(m[1]), true
			}
		}
	}
	return "", false
}

// Unescape resolves common escape sequences and removes stray escape
// remnants and mojibake glyphs from an extracted value.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = escapeRemnantPattern.ReplaceAllString(s, "")
	s = mojibakePattern.ReplaceAllString(s, "")
	return s
}

// braceSalvage decodes the substring between the first '{' and the last
// '}' of the raw text, accepting the result only when it parses and
// contains the expected top-level key.
func braceSalvage(raw, field string) (map[string]any, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, false
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, false
	}
	if _, ok := obj[field]; !ok {
		return nil, false
	}
	return obj, true
}

var (
	openBracePattern  = regexp.MustCompile(`^\s*\{\s*`)
	closeBracePattern = regexp.MustCompile(`\s*\}\s*$`)
	wireframePattern  = regexp.MustCompile(`"wireframe_json":\s*[^,}]+,?\s*`)
	keyValuePattern   = regexp.MustCompile(`"[^"]*":\s*"[^"]*",?\s*`)
)

// stripScaffolding removes obvious JSON structure from text that never
// parsed, leaving free-form instructional content.
func stripScaffolding(content string) string {
	cleaned := openBracePattern.ReplaceAllString(content, "")
	cleaned = closeBracePattern.ReplaceAllString(cleaned, "")
	cleaned = wireframePattern.ReplaceAllString(cleaned, "")
	cleaned = keyValuePattern.ReplaceAllString(cleaned, "")
	cleaned = Unescape(cleaned)
	return strings.TrimSpace(cleaned)
}

func stringField(obj map[string]any, field string) string {
	switch v := obj[field].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

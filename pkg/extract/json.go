// Package extract recovers structured data from LLM response text. The
// model is an unreliable collaborator: it wraps JSON in code fences,
// emits near-JSON with mismatched quotes, or answers in prose. The
// package applies an ordered ladder of increasingly lenient strategies
// and, for any non-empty input, always produces something renderable.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// thinkTagPattern matches <think>...</think> tags that reasoning models
// prepend to responses.
var thinkTagPattern = regexp.MustCompile(`(?s)^[\s]*<think>.*?</think>[\s]*`)

// fencePattern matches a leading code fence with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```\\s*$")

// StripFences removes think tags and surrounding markdown code-fence
// markers, returning the inner text. Input without fences is returned
// trimmed but otherwise unchanged.
func StripFences(s string) string {
	s = thinkTagPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	// Tolerate an unterminated fence at either end.
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractJSON finds the first balanced JSON object or array in the text
// and returns it if it is valid JSON.
func ExtractJSON(s string) (string, error) {
	cleaned := StripFences(s)

	objStart := strings.IndexByte(cleaned, '{')
	arrStart := strings.IndexByte(cleaned, '[')

	if objStart >= 0 && (arrStart < 0 || objStart < arrStart) {
		if jsonStr, ok := extractBalanced(cleaned, '{', '}'); ok && json.Valid([]byte(jsonStr)) {
			return jsonStr, nil
		}
	}
	if arrStart >= 0 {
		if jsonStr, ok := extractBalanced(cleaned, '[', ']'); ok && json.Valid([]byte(jsonStr)) {
			return jsonStr, nil
		}
	}
	if json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}
	return "", fmt.Errorf("no valid JSON found in response")
}

// extractBalanced finds the first balanced structure starting with
// openChar, counting bracket depth and skipping string contents.
func extractBalanced(s string, openChar, closeChar byte) (string, bool) {
	start := strings.IndexByte(s, openChar)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if c == openChar {
			depth++
		} else if c == closeChar {
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// Decode extracts the first valid JSON value from a response and
// unmarshals it into T.
func Decode[T any](response string) (T, error) {
	var result T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return result, nil
}

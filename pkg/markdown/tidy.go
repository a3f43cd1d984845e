// Package markdown post-processes generated instruction text into
// consistently spaced Markdown.
package markdown

import (
	"regexp"
	"strings"
)

var (
	headingPattern  = regexp.MustCompile(`(?m)^(## .+)$`)
	numberedPattern = regexp.MustCompile(`(?m)^(\d+\.)`)
	bulletPattern   = regexp.MustCompile(`(?m)^\s*-\s+`)
)

// Tidy normalizes spacing: a blank line after each level-two heading,
// numbered list items on their own line, and dash bullets at a uniform
// two-space indent. Always returns a string, possibly unchanged.
func Tidy(md string) string {
	md = headingPattern.ReplaceAllString(md, "$1\n")
	md = numberedPattern.ReplaceAllString(md, "\n$1")
	md = bulletPattern.ReplaceAllString(md, "  - ")
	return strings.TrimSpace(md)
}

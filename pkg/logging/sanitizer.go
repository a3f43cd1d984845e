package logging

import (
	"regexp"
)

const (
	// MaxPromptLogLength is the maximum length of prompt text to log
	MaxPromptLogLength = 100
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match bearer tokens in request dumps or error text
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_.]+`)

	// Pattern to match potential API keys
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|key)=[A-Za-z0-9-_]{20,}`)

	// Pattern to match OpenAI-style secret keys
	secretKeyPattern = regexp.MustCompile(`sk-[A-Za-z0-9-_]{16,}`)

	// Pattern to match URL-embedded credentials (user:pass@host format)
	urlCredsPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@[^/\s]+`)
)

// SanitizeError sanitizes error messages that might contain sensitive data.
// Use this before logging any error from an upstream AI provider.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	sanitized := err.Error()
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
	sanitized = apiKeyPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = secretKeyPattern.ReplaceAllString(sanitized, RedactedText)
	sanitized = urlCredsPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)

	return sanitized
}

// SanitizeEndpoint removes URL-embedded credentials from an endpoint
// before logging it.
func SanitizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	return urlCredsPattern.ReplaceAllString(endpoint, "://"+RedactedText+"@"+RedactedText)
}

// SanitizePrompt truncates prompt text for logging. Prompts can carry
// customer schema details, so only a short prefix is ever logged.
func SanitizePrompt(prompt string) string {
	if prompt == "" {
		return ""
	}
	sanitized := prompt
	if len(sanitized) > MaxPromptLogLength {
		sanitized = sanitized[:MaxPromptLogLength] + "..."
	}
	sanitized = apiKeyPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = secretKeyPattern.ReplaceAllString(sanitized, RedactedText)
	return sanitized
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

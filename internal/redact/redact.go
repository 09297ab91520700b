// Package redact scrubs credentials and other sensitive fragments from
// strings before they reach logs or error responses.
package redact

import "regexp"

// RedactionPlaceholder replaces every matched sensitive fragment.
const RedactionPlaceholder = "[REDACTED]"

// Precompiled patterns for the secrets this service actually handles:
// database URLs with embedded credentials, JWT tokens, password and secret
// assignments, and email addresses.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`),
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
	regexp.MustCompile(`(?i)(password|passwd|secret|jwt_secret|api[_-]?key)([=:\s]['"]?)[^'"&\s]{3,}`),
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
}

// String returns s with all sensitive fragments replaced.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, RedactionPlaceholder)
	}
	return s
}

// Error returns the redacted message of err, or an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Package normalize provides helper functions for consistent string
// normalization across the application. Use these helpers instead of
// scattered strings.ToLower and strings.TrimSpace calls.
package normalize

import "strings"

// Email normalizes an email address by trimming whitespace and converting
// to lowercase. This is the canonical form for storage and comparison.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name normalizes a display name by trimming whitespace.
// Use text.Fold() for case-insensitive comparison keys.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

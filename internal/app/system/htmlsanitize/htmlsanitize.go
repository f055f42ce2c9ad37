// Package htmlsanitize provides HTML sanitization for the admin-editable
// footer content. It uses bluemonday to strip dangerous HTML while
// preserving safe formatting.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy is the shared bluemonday policy for sanitizing footer HTML.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// UGC policy allows basic formatting, lists, and links.
		policy = bluemonday.UGCPolicy()

		// Footer markup commonly carries these inline elements too.
		policy.AllowElements("u", "s", "sub", "sup", "mark", "small")
		policy.AllowDataAttributes()
	})
	return policy
}

// Sanitize cleans HTML input, removing potentially dangerous elements and
// attributes while preserving safe formatting like bold, italic, lists,
// and links.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizeToHTML sanitizes HTML input and returns it as template.HTML,
// which is safe to render directly in Go templates without escaping.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}

// IsPlainText checks if content appears to be plain text (no HTML tags).
func IsPlainText(content string) bool {
	if content == "" {
		return true
	}
	// Valid HTML tags require both characters; if either is missing,
	// treat the content as plain text.
	return !strings.Contains(content, "<") || !strings.Contains(content, ">")
}

// PrepareForDisplay takes content (plain text or HTML) and returns
// sanitized template.HTML ready for rendering. Plain text is escaped and
// newlines become <br>.
func PrepareForDisplay(content string) template.HTML {
	if content == "" {
		return ""
	}
	if IsPlainText(content) {
		escaped := template.HTMLEscapeString(content)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
		return template.HTML("<p>" + escaped + "</p>")
	}
	return SanitizeToHTML(content)
}

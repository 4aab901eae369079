// Package sanitize provides text sanitization utilities to prevent XSS attacks.
package sanitize

import (
	"html"
	"strings"
)

// Text trims surrounding whitespace. Use for free-text fields that are stored
// as submitted and escaped at render time.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Escape trims and HTML-escapes s so embedded markup is stored inert.
// This is a defense-in-depth measure; templates escape their output as well.
func Escape(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// Unescape reverses Escape for rendering through an auto-escaping template,
// so stored values are not escaped twice.
func Unescape(s string) string {
	return html.UnescapeString(s)
}

// Email trims and lower-cases an address into its canonical stored form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

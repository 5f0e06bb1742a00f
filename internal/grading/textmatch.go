package grading

import "strings"

// normalizeBlank casefolds and trims leading/trailing whitespace. This is the
// whole tolerance for fill_blank answers.
func normalizeBlank(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

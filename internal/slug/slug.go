// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches runs of characters that are neither word characters
	// (letters, digits, underscore) nor spaces.
	nonWord = regexp.MustCompile(`[^\w ]+`)
	// spaceRuns matches runs of one or more spaces.
	spaceRuns = regexp.MustCompile(` +`)
)

// Make derives a slug from a post title or category name: lowercase the
// input, strip everything outside word characters and spaces, then collapse
// space runs into single hyphens.
// Example: "Tech & Science" -> "tech-science".
//
// Make alone guarantees neither non-emptiness nor uniqueness; the store's
// unique indexes on the source field and the slug column do that.
func Make(s string) string {
	out := strings.ToLower(s)
	out = nonWord.ReplaceAllString(out, "")
	return spaceRuns.ReplaceAllString(out, "-")
}

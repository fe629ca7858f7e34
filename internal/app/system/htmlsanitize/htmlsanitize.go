// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Policies are safe for concurrent use once built.
var (
	ugc    = newUGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func newUGCPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize keeps basic formatting (paragraphs, emphasis, lists, links,
// tables) and strips scripts, event handlers and javascript: URLs. Used for
// notification bodies written by admins.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// PlainText strips every tag and returns trimmed text, for fields that are
// shown as plain strings (titles, leave reasons).
func PlainText(s string) string {
	// StrictPolicy escapes entities; undo that so html/template does not
	// escape twice.
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

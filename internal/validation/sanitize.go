package validation

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// descriptionPolicy keeps basic formatting markup and drops scripts,
// event handlers and unsafe URLs. A configured policy is safe for
// concurrent use.
var descriptionPolicy = bluemonday.UGCPolicy()

// SanitizeDescription neutralizes executable markup in a description.
// Input the policy leaves intact is returned verbatim rather than in
// bluemonday's entity-escaped form, so "Tom & Jerry" stays as typed. The
// sanitized output is kept only when the policy removed something.
func SanitizeDescription(s string) string {
	if s == "" {
		return s
	}

	clean := descriptionPolicy.Sanitize(s)
	if html.UnescapeString(clean) == s {
		return s
	}
	return clean
}

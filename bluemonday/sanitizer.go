// Package bluemonday implements docview.Sanitizer with a user-generated
// content policy extended for converter output.
package bluemonday

import (
	"github.com/fwojciec/docview"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements docview.Sanitizer at compile time.
var _ docview.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips scripts, event handlers and other unsafe markup while
// keeping the structure and class names converters rely on for styling.
// Sanitizer is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowAttrs("id").Globally()
	p.AllowElements("div", "span", "section", "article", "figure", "figcaption", "details", "summary", "colgroup", "col")
	p.AllowAttrs("width").OnElements("col")
	return &Sanitizer{policy: p}
}

// Sanitize returns html with unsafe markup removed.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

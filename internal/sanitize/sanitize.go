// Package sanitize filters user-submitted rich text through a fixed
// allow-list before it is persisted. Anything outside the allow-list is
// stripped, not escaped: the tags vanish and their text content survives
// (script and style bodies are dropped entirely).
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// allowedTags is the full set of structural and text tags that survive
// sanitization.
var allowedTags = []string{
	// Text formatting
	"p", "br", "b", "strong", "i", "em", "u", "s", "sub", "sup",

	// Lists
	"ul", "ol", "li",

	// Links
	"a",

	// Headings
	"h1", "h2", "h3", "h4", "h5", "h6",

	// Tables
	"table", "thead", "tbody", "tr", "th", "td",

	// Blockquotes
	"blockquote",

	// Horizontal line
	"hr",

	// Images
	"img",

	// Code formatting
	"pre", "code", "span",
}

// allowedStyles is the CSS-property allow-list applied inside style
// attributes. Any other property is removed even when the style attribute
// itself is allowed.
var allowedStyles = []string{
	"text-align",
	"color",
	"background-color",
	"font-weight",
	"font-style",
	"text-decoration",
	"width",
	"height",
	"border",
	"border-collapse",
	"border-spacing",
	"vertical-align",
	"padding",
	"margin",
}

// styledTags are the only tags that may carry an inline style attribute.
var styledTags = []string{"span", "p", "td", "th"}

// Sanitizer applies the blog's rich-text policy. It is safe for concurrent
// use and sanitization is idempotent.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(allowedTags...)

	p.AllowAttrs("href", "title", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")

	p.AllowAttrs("style").OnElements(styledTags...)
	p.AllowStyles(allowedStyles...).OnElements(styledTags...)

	p.AllowURLSchemes("http", "https", "mailto")

	return &Sanitizer{policy: p}
}

// Clean returns html with everything outside the allow-list removed.
func (s *Sanitizer) Clean(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}

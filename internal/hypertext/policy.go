package hypertext

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// Class names: chroma token classes and our own hooks
	classPattern = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

	// Style values: colors, lengths and keywords only, no url() or expressions
	styleValuePattern = regexp.MustCompile(`^[#a-zA-Z0-9.%, \-]+$`)
)

// calloutStyles are the properties the callout box may carry inline.
var calloutStyles = []string{
	"background-color",
	"border",
	"border-left",
	"border-radius",
	"margin",
	"padding",
}

// newPolicy allows exactly what the renderer emits. Links keep their
// targets untouched: no rel attribute is added and relative URLs survive.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("h2", "h3", "p", "strong", "em", "code", "pre", "span",
		"ul", "ol", "li", "blockquote", "div", "br")

	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")

	p.AllowAttrs("class").Matching(classPattern).
		OnElements("div", "p", "span", "pre", "code", "ul", "ol", "li", "blockquote")
	p.AllowStyles(calloutStyles...).Matching(styleValuePattern).OnElements("div")

	return p
}

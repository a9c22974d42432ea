package hypertext

import (
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"

	"github.com/alnah/go-docmark/internal/markup"
)

// Defaults.
const (
	DefaultCalloutLabel   = markup.CalloutMarker
	DefaultHighlightStyle = "github"
	CalloutClass          = "tldr-box"
	CalloutLabelClass     = "tldr-label"
)

// DefaultCalloutStyle is the inline style of the callout box, so the box
// stays distinct in CMS themes that ignore our class names.
const DefaultCalloutStyle = "background-color: #f0f7ff; border-left: 4px solid #2563eb; " +
	"padding: 12px 16px; margin: 16px 0; border-radius: 4px"

var (
	// Ordinal prefix on a list item: "1. ", "12. "
	ordinalPattern = regexp.MustCompile(`^\d+\.\s+`)

	// Paragraph text that already opens a block-level element
	blockHTMLPattern = regexp.MustCompile(`(?i)^<(?:div|p|ul|ol|blockquote|pre|table|figure|section|article|aside|h[1-6]|hr)\b`)
)

// Renderer projects a block sequence onto sanitized hypertext. It is
// immutable after New and safe for concurrent use.
type Renderer struct {
	calloutLabel string
	calloutStyle string
	style        *chroma.Style
	formatter    *chromahtml.Formatter
	policy       *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCalloutLabel overrides DefaultCalloutLabel. Empty values are ignored.
func WithCalloutLabel(label string) Option {
	return func(r *Renderer) {
		if label != "" {
			r.calloutLabel = label
		}
	}
}

// WithCalloutStyle overrides DefaultCalloutStyle. Declarations outside the
// sanitizer's allow list are dropped from the output.
func WithCalloutStyle(css string) Option {
	return func(r *Renderer) { r.calloutStyle = css }
}

// WithHighlightStyle selects the chroma style used by StyleSheet.
// Unknown names fall back to chroma's default style.
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.style = styles.Get(name)
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		calloutLabel: DefaultCalloutLabel,
		calloutStyle: DefaultCalloutStyle,
		style:        styles.Get(DefaultHighlightStyle),
		formatter:    chromahtml.New(chromahtml.WithClasses(true)),
		policy:       newPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render emits one fragment per block, in order, joined by newlines, and
// sanitizes the result. Level 1 headings are dropped: the embedding page
// shows the title itself, so meta is not printed. An empty doc yields "".
func (r *Renderer) Render(doc markup.Document, _ markup.Metadata) string {
	fragments := make([]string, 0, doc.Len())
	for _, b := range doc.All() {
		if f := r.fragment(b); f != "" {
			fragments = append(fragments, f)
		}
	}
	if len(fragments) == 0 {
		return ""
	}
	return r.policy.Sanitize(strings.Join(fragments, "\n"))
}

// StyleSheet writes the CSS for highlighted code blocks.
func (r *Renderer) StyleSheet(w io.Writer) error {
	return r.formatter.WriteCSS(w, r.style)
}

func (r *Renderer) fragment(b markup.Block) string {
	var sb strings.Builder

	switch v := b.(type) {
	case markup.Heading:
		if v.Level < 2 {
			return ""
		}
		tag := "h2"
		if v.Level == 3 {
			tag = "h3"
		}
		wrap(&sb, tag, v.Text)

	case markup.Paragraph:
		if blockHTMLPattern.MatchString(v.Text) {
			writeInlines(&sb, markup.ParseInline(v.Text))
			break
		}
		wrap(&sb, "p", v.Text)

	case markup.Blockquote:
		wrap(&sb, "blockquote", v.Text)

	case markup.List:
		writeList(&sb, v.Items)

	case markup.Callout:
		r.writeCallout(&sb, v.Items)

	case markup.CodeBlock:
		r.writeCode(&sb, v)
	}

	return sb.String()
}

// wrap writes <tag>inline(text)</tag>.
func wrap(sb *strings.Builder, tag, text string) {
	sb.WriteString("<" + tag + ">")
	writeInlines(sb, markup.ParseInline(text))
	sb.WriteString("</" + tag + ">")
}

// writeList emits <ol> when every item starts with an ordinal, with the
// ordinals stripped, and <ul> otherwise.
func writeList(sb *strings.Builder, items []string) {
	ordered := len(items) > 0
	for _, it := range items {
		if !ordinalPattern.MatchString(it) {
			ordered = false
			break
		}
	}

	tag := "ul"
	if ordered {
		tag = "ol"
	}
	sb.WriteString("<" + tag + ">")
	for _, it := range items {
		if ordered {
			it = ordinalPattern.ReplaceAllString(it, "")
		}
		wrap(sb, "li", it)
	}
	sb.WriteString("</" + tag + ">")
}

// writeCallout emits the callout box as one self-contained element.
func (r *Renderer) writeCallout(sb *strings.Builder, items []string) {
	sb.WriteString(`<div class="` + CalloutClass + `"`)
	if r.calloutStyle != "" {
		sb.WriteString(` style="` + html.EscapeString(r.calloutStyle) + `"`)
	}
	sb.WriteString(`><p class="` + CalloutLabelClass + `"><strong>`)
	sb.WriteString(html.EscapeString(r.calloutLabel))
	sb.WriteString(`</strong></p><ul>`)
	for _, it := range items {
		wrap(sb, "li", it)
	}
	sb.WriteString(`</ul></div>`)
}

// writeCode highlights code with chroma, falling back to plain escaped
// text when tokenizing fails.
func (r *Renderer) writeCode(sb *strings.Builder, c markup.CodeBlock) {
	lexer := lexers.Get(c.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, c.Code)
	if err == nil {
		var buf strings.Builder
		if err = r.formatter.Format(&buf, r.style, it); err == nil {
			sb.WriteString(buf.String())
			return
		}
	}
	sb.WriteString("<pre><code>")
	sb.WriteString(html.EscapeString(c.Code))
	sb.WriteString("</code></pre>")
}

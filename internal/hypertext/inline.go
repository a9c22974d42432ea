package hypertext

import (
	"html"
	"strings"

	"github.com/alnah/go-docmark/internal/markup"
)

// writeInlines writes HTML for an inline tree. Raw HTML is copied as is;
// the sanitizer decides what survives.
func writeInlines(sb *strings.Builder, in markup.Inlines) {
	for _, n := range in {
		switch n.Kind {
		case markup.InlineText:
			sb.WriteString(html.EscapeString(n.Text))
		case markup.InlineEmphasis:
			sb.WriteString("<em>")
			writeInlines(sb, n.Children)
			sb.WriteString("</em>")
		case markup.InlineStrong:
			sb.WriteString("<strong>")
			writeInlines(sb, n.Children)
			sb.WriteString("</strong>")
		case markup.InlineCode:
			sb.WriteString("<code>")
			sb.WriteString(html.EscapeString(n.Text))
			sb.WriteString("</code>")
		case markup.InlineLink:
			sb.WriteString(`<a href="`)
			sb.WriteString(html.EscapeString(n.URL))
			sb.WriteString(`">`)
			writeInlines(sb, n.Children)
			sb.WriteString("</a>")
		case markup.InlineImage:
			sb.WriteString(`<img src="`)
			sb.WriteString(html.EscapeString(n.URL))
			sb.WriteString(`" alt="`)
			sb.WriteString(html.EscapeString(n.Text))
			sb.WriteString(`">`)
		case markup.InlineHTML:
			sb.WriteString(n.Text)
		}
	}
}

// Inline converts inline markup to unsanitized HTML.
func Inline(text string) string {
	var sb strings.Builder
	writeInlines(&sb, markup.ParseInline(text))
	return sb.String()
}

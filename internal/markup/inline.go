package markup

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// InlineKind identifies an inline node.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineEmphasis
	InlineStrong
	InlineCode
	InlineLink
	InlineImage
	InlineHTML
)

// Inline is one node of an inline tree.
//
// Text carries the literal content of text, code and raw HTML nodes, and the
// alternative text of images. URL carries link and image destinations.
// Emphasis, strong and link nodes hold their content in Children.
type Inline struct {
	Kind     InlineKind
	Text     string
	URL      string
	Children Inlines
}

// Inlines is a sequence of inline nodes in reading order.
type Inlines []Inline

// Plain returns the text content with every markup construct removed.
// Raw HTML contributes nothing.
func (in Inlines) Plain() string {
	var sb strings.Builder
	in.writePlain(&sb)
	return sb.String()
}

func (in Inlines) writePlain(sb *strings.Builder) {
	for _, n := range in {
		switch n.Kind {
		case InlineText, InlineCode, InlineImage:
			sb.WriteString(n.Text)
		case InlineHTML:
		default:
			n.Children.writePlain(sb)
		}
	}
}

// inlineParser only knows paragraphs, so block syntax inside a line
// ("1. ", "---", "<div>") stays literal text for the inline parsers.
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
)

// ParseInline tokenizes emphasis, strong, code spans, links, autolinks,
// images and raw HTML in s. Unmatched markers stay literal text.
func ParseInline(s string) Inlines {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	src := []byte(s)
	root := inlineParser.Parse(text.NewReader(src))

	var out Inlines
	for para := root.FirstChild(); para != nil; para = para.NextSibling() {
		if len(out) > 0 {
			out = appendText(out, " ")
		}
		out = append(out, convertInlines(para, src)...)
	}
	return out
}

// convertInlines maps the children of a goldmark node to Inlines.
func convertInlines(n ast.Node, src []byte) Inlines {
	var out Inlines
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			out = appendText(out, unescape(v.Segment.Value(src)))
			if v.SoftLineBreak() || v.HardLineBreak() {
				out = appendText(out, " ")
			}
		case *ast.String:
			out = appendText(out, string(v.Value))
		case *ast.Emphasis:
			kind := InlineEmphasis
			if v.Level >= 2 {
				kind = InlineStrong
			}
			out = append(out, Inline{Kind: kind, Children: convertInlines(v, src)})
		case *ast.CodeSpan:
			out = append(out, Inline{Kind: InlineCode, Text: rawText(v, src)})
		case *ast.Link:
			out = append(out, Inline{
				Kind:     InlineLink,
				URL:      string(v.Destination),
				Children: convertInlines(v, src),
			})
		case *ast.AutoLink:
			out = append(out, Inline{
				Kind:     InlineLink,
				URL:      string(v.URL(src)),
				Children: Inlines{{Kind: InlineText, Text: string(v.Label(src))}},
			})
		case *ast.Image:
			out = append(out, Inline{
				Kind: InlineImage,
				URL:  string(v.Destination),
				Text: convertInlines(v, src).Plain(),
			})
		case *ast.RawHTML:
			var sb strings.Builder
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				sb.Write(seg.Value(src))
			}
			out = append(out, Inline{Kind: InlineHTML, Text: sb.String()})
		default:
			out = append(out, convertInlines(c, src)...)
		}
	}
	return out
}

// appendText merges s into a trailing text node when there is one.
func appendText(out Inlines, s string) Inlines {
	if s == "" {
		return out
	}
	if last := len(out) - 1; last >= 0 && out[last].Kind == InlineText {
		out[last].Text += s
		return out
	}
	return append(out, Inline{Kind: InlineText, Text: s})
}

// rawText concatenates the verbatim text segments below n.
func rawText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			continue
		}
		sb.WriteString(rawText(c, src))
	}
	return sb.String()
}

// unescape resolves backslash escapes and character references.
func unescape(b []byte) string {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}

package printdoc

import "github.com/alnah/go-docmark/internal/markup"

// Runs splits inline markup into styled runs in reading order. Adjacent
// runs with the same style and target are merged; raw HTML is dropped.
func Runs(text string) []Run {
	var out []Run
	flatten(markup.ParseInline(text), Run{}, &out)
	return out
}

func flatten(in markup.Inlines, style Run, out *[]Run) {
	for _, n := range in {
		switch n.Kind {
		case markup.InlineText:
			r := style
			r.Text = n.Text
			appendRun(out, r)
		case markup.InlineCode:
			r := style
			r.Text, r.Code = n.Text, true
			appendRun(out, r)
		case markup.InlineEmphasis:
			s := style
			s.Italic = true
			flatten(n.Children, s, out)
		case markup.InlineStrong:
			s := style
			s.Bold = true
			flatten(n.Children, s, out)
		case markup.InlineLink:
			s := style
			s.URL = n.URL
			flatten(n.Children, s, out)
		case markup.InlineImage:
			// Images never merge with neighbours.
			*out = append(*out, Run{Text: n.Text, URL: n.URL, Image: true})
		}
	}
}

func appendRun(out *[]Run, r Run) {
	if r.Text == "" {
		return
	}
	if last := len(*out) - 1; last >= 0 && sameStyle((*out)[last], r) {
		(*out)[last].Text += r.Text
		return
	}
	*out = append(*out, r)
}

func sameStyle(a, b Run) bool {
	return !a.Image && !b.Image &&
		a.URL == b.URL && a.Bold == b.Bold && a.Italic == b.Italic && a.Code == b.Code
}

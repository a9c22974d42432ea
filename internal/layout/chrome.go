package layout

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-docmark/internal/printdoc"
)

// Chrome replaces elements carrying these classes in header and footer
// templates.
const (
	pageNumberSpan = `<span class="pageNumber"></span>`
	totalPagesSpan = `<span class="totalPages"></span>`
)

const chromeFont = `-apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif`

// emptyTemplate suppresses Chrome's default header or footer.
const emptyTemplate = "<span></span>"

var placeholders = strings.NewReplacer(
	"{page}", pageNumberSpan,
	"{total}", totalPagesSpan,
)

// HeaderTemplate builds Chrome's page header: logo then title.
func HeaderTemplate(h printdoc.Header) string {
	if h.LogoURL == "" && h.Title == "" {
		return emptyTemplate
	}
	var parts []string
	if h.LogoURL != "" {
		parts = append(parts, fmt.Sprintf(`<img src="%s" style="height: 14px; vertical-align: middle; margin-right: 8px;">`,
			html.EscapeString(h.LogoURL)))
	}
	if h.Title != "" {
		parts = append(parts, "<span>"+html.EscapeString(h.Title)+"</span>")
	}
	return chromeBox("left", strings.Join(parts, ""))
}

// FooterTemplate builds Chrome's page footer: generation date on the left,
// page indicator on the right with {page} and {total} filled by Chrome.
func FooterTemplate(f printdoc.Footer) string {
	if f.GeneratedOn == "" && f.PageIndicator == "" {
		return emptyTemplate
	}
	left := html.EscapeString(f.GeneratedOn)
	right := placeholders.Replace(html.EscapeString(f.PageIndicator))
	return chromeBox("justify",
		`<span style="float: left;">`+left+`</span><span style="float: right;">`+right+`</span>`)
}

func chromeBox(align, content string) string {
	return fmt.Sprintf(`<div style="font-size: 9px; font-family: %s; color: #888; width: 100%%; text-align: %s; padding: 0 0.5in;">%s</div>`,
		chromeFont, align, content)
}

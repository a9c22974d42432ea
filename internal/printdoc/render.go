package printdoc

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-docmark/internal/dateutil"
	"github.com/alnah/go-docmark/internal/markup"
	"github.com/alnah/go-docmark/internal/slug"
)

// TOCPageOffset is added to a heading's index to get its synthetic page:
// page 1 is the cover, page 2 the table of contents.
const TOCPageOffset = 3

// Defaults.
const (
	DefaultTOCTitle      = "Contents"
	DefaultCalloutLabel  = markup.CalloutMarker
	DefaultPageIndicator = "Page {page} of {total}"
	DefaultBaseFontSize  = 11.0
	DefaultBullet        = "•"
	QuoteIndent          = 1.5
)

// headingScale multiplies the base font size per heading level.
var headingScale = [3]float64{1.9, 1.6, 1.3}

// Renderer projects a block sequence onto the print model. It is
// immutable after New and safe for concurrent use.
type Renderer struct {
	logoURL       string
	tocTitle      string
	calloutLabel  string
	dateLayout    string
	pageIndicator string
	baseFontSize  float64
	breakBefore   int
	numbered      bool
	now           func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogoURL sets the logo shown on the cover and in page headers.
// The URL is passed through uninterpreted.
func WithLogoURL(u string) Option {
	return func(r *Renderer) { r.logoURL = u }
}

// WithTOCTitle overrides DefaultTOCTitle. Empty values are ignored.
func WithTOCTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.tocTitle = title
		}
	}
}

// WithCalloutLabel overrides DefaultCalloutLabel. Empty values are ignored.
func WithCalloutLabel(label string) Option {
	return func(r *Renderer) {
		if label != "" {
			r.calloutLabel = label
		}
	}
}

// WithDateFormat sets the cover and footer date format (dateutil tokens or
// preset). Invalid formats make New fail.
func WithDateFormat(format string) Option {
	return func(r *Renderer) { r.dateLayout = format }
}

// WithPageIndicator overrides DefaultPageIndicator. Empty values are ignored.
func WithPageIndicator(s string) Option {
	return func(r *Renderer) {
		if s != "" {
			r.pageIndicator = s
		}
	}
}

// WithBaseFontSize sets the paragraph font size in points.
// Panics if size is not positive (programmer error).
func WithBaseFontSize(size float64) Option {
	if size <= 0 {
		panic("printdoc: WithBaseFontSize size must be positive")
	}
	return func(r *Renderer) { r.baseFontSize = size }
}

// WithBreakBefore starts a new content section at every heading of level
// 1 to level. Zero keeps all content in one section.
// Panics if level is outside 0..3 (programmer error).
func WithBreakBefore(level int) Option {
	if level < 0 || level > 3 {
		panic("printdoc: WithBreakBefore level must be between 0 and 3")
	}
	return func(r *Renderer) { r.breakBefore = level }
}

// WithNumbering toggles hierarchical heading numbers ("1.2.").
func WithNumbering(on bool) Option {
	return func(r *Renderer) { r.numbered = on }
}

// WithClock sets the source of the footer generation date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		tocTitle:      DefaultTOCTitle,
		calloutLabel:  DefaultCalloutLabel,
		dateLayout:    dateutil.DefaultDateFormat,
		pageIndicator: DefaultPageIndicator,
		baseFontSize:  DefaultBaseFontSize,
		numbered:      true,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	layout, err := dateutil.ParseDateFormat(r.dateLayout)
	if err != nil {
		return nil, fmt.Errorf("printdoc: %w", err)
	}
	r.dateLayout = layout
	return r, nil
}

// Render builds the print model for doc. It never fails: an empty doc
// yields a cover, an empty table of contents and no content sections.
func (r *Renderer) Render(doc markup.Document, meta markup.Metadata) *Document {
	out := &Document{
		Title: meta.Title,
		Cover: r.cover(meta),
		TOC:   TOC{Title: r.tocTitle},
	}
	if doc.Len() == 0 {
		return out
	}

	header := Header{LogoURL: r.logoURL, Title: meta.Title}
	footer := Footer{
		GeneratedOn:   r.now().Format(r.dateLayout),
		PageIndicator: r.pageIndicator,
	}

	var (
		anchors  slug.Anchors
		numbers  numbering
		headings int
		current  *Section
	)
	newSection := func() {
		out.Sections = append(out.Sections, Section{Header: header, Footer: footer})
		current = &out.Sections[len(out.Sections)-1]
	}
	newSection()

	for _, b := range doc.All() {
		h, isHeading := b.(markup.Heading)
		if isHeading && r.breakBefore > 0 && h.Level <= r.breakBefore && len(current.Elements) > 0 {
			newSection()
		}

		if !isHeading {
			current.Elements = append(current.Elements, r.element(b))
			continue
		}

		text := h.Plain()
		num, depth := numbers.next(h.Level)
		if !r.numbered {
			num = ""
		}
		el := HeadingElement{
			Level:    h.Level,
			Number:   num,
			Text:     text,
			Anchor:   anchors.Next(text),
			FontSize: r.headingSize(h.Level),
		}
		current.Elements = append(current.Elements, el)
		out.TOC.Entries = append(out.TOC.Entries, TOCEntry{
			Level:  h.Level,
			Depth:  depth,
			Number: num,
			Text:   text,
			Anchor: el.Anchor,
			Page:   headings + TOCPageOffset,
		})
		headings++
	}

	return out
}

func (r *Renderer) cover(meta markup.Metadata) Cover {
	c := Cover{
		LogoURL:     r.logoURL,
		Title:       meta.Title,
		Summary:     meta.Summary,
		ContentType: meta.ContentType,
		Status:      meta.Status,
	}
	if !meta.CreatedAt.IsZero() {
		c.Date = meta.CreatedAt.Format(r.dateLayout)
	}
	if meta.WordCount > 0 {
		c.WordCount = humanize.Comma(int64(meta.WordCount)) + " words"
	}
	return c
}

// element maps a non-heading block to its layout primitive.
func (r *Renderer) element(b markup.Block) Element {
	switch v := b.(type) {
	case markup.Paragraph:
		return ParagraphElement{Runs: Runs(v.Text)}
	case markup.Blockquote:
		runs := Runs(v.Text)
		for i := range runs {
			runs[i].Italic = true
		}
		return QuoteElement{Runs: runs, Indent: QuoteIndent}
	case markup.List:
		return ListElement{Bullet: DefaultBullet, Items: itemRuns(v.Items)}
	case markup.Callout:
		return CalloutElement{Label: r.calloutLabel, Items: itemRuns(v.Items)}
	case markup.CodeBlock:
		return CodeElement{Language: v.Language, Code: v.Code}
	}
	panic(fmt.Sprintf("printdoc: unexpected block %T", b))
}

func (r *Renderer) headingSize(level int) float64 {
	if level < 1 || level > len(headingScale) {
		return r.baseFontSize
	}
	return r.baseFontSize * headingScale[level-1]
}

func itemRuns(items []string) [][]Run {
	out := make([][]Run, len(items))
	for i, it := range items {
		out[i] = Runs(it)
	}
	return out
}

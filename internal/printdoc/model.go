package printdoc

// Document is the paginated print model handed to a layout engine.
type Document struct {
	Title    string    `yaml:"title"`
	Cover    Cover     `yaml:"cover"`
	TOC      TOC       `yaml:"toc"`
	Sections []Section `yaml:"sections"`
}

// Cover is the first page.
type Cover struct {
	LogoURL     string `yaml:"logo_url,omitempty"`
	Title       string `yaml:"title"`
	Summary     string `yaml:"summary,omitempty"`
	Date        string `yaml:"date,omitempty"`
	ContentType string `yaml:"content_type,omitempty"`
	Status      string `yaml:"status,omitempty"`
	WordCount   string `yaml:"word_count,omitempty"`
}

// TOC is the table of contents page.
type TOC struct {
	Title   string     `yaml:"title"`
	Entries []TOCEntry `yaml:"entries"`
}

// TOCEntry points at one heading.
//
// Page is synthetic: the heading's index among all headings plus
// TOCPageOffset. It assumes one heading per page after the cover and the
// table of contents, and is not a measured position; real page breaks are
// decided by the layout engine.
type TOCEntry struct {
	Level  int    `yaml:"level"`
	Depth  int    `yaml:"depth"`
	Number string `yaml:"number,omitempty"`
	Text   string `yaml:"text"`
	Anchor string `yaml:"anchor"`
	Page   int    `yaml:"page"`
}

// Section is a run of content pages sharing the same decoration.
type Section struct {
	Header   Header    `yaml:"header"`
	Footer   Footer    `yaml:"footer"`
	Elements []Element `yaml:"elements"`
}

// Header is printed at the top of every content page.
type Header struct {
	LogoURL string `yaml:"logo_url,omitempty"`
	Title   string `yaml:"title"`
}

// Footer is printed at the bottom of every content page.
// PageIndicator may hold the {page} and {total} placeholders.
type Footer struct {
	GeneratedOn   string `yaml:"generated_on"`
	PageIndicator string `yaml:"page_indicator"`
}

// ElementKind names a layout element variant.
type ElementKind string

const (
	KindHeading   ElementKind = "heading"
	KindParagraph ElementKind = "paragraph"
	KindQuote     ElementKind = "quote"
	KindList      ElementKind = "list"
	KindCallout   ElementKind = "callout"
	KindCode      ElementKind = "code"
)

// Element is one layout primitive of a content section. Implementations
// are HeadingElement, ParagraphElement, QuoteElement, ListElement,
// CalloutElement and CodeElement.
type Element interface {
	ElementKind() ElementKind
	element()
}

// HeadingElement is a titled text run sized by level.
type HeadingElement struct {
	Level    int     `yaml:"level"`
	Number   string  `yaml:"number,omitempty"`
	Text     string  `yaml:"text"`
	Anchor   string  `yaml:"anchor"`
	FontSize float64 `yaml:"font_size"`
}

// ParagraphElement is justified body text.
type ParagraphElement struct {
	Runs []Run `yaml:"runs"`
}

// QuoteElement is indented, italic text.
type QuoteElement struct {
	Runs   []Run   `yaml:"runs"`
	Indent float64 `yaml:"indent_em"`
}

// ListElement is a bulleted list; each item is a run sequence.
type ListElement struct {
	Bullet string  `yaml:"bullet"`
	Items  [][]Run `yaml:"items"`
}

// CalloutElement is a boxed group of items under a fixed label.
type CalloutElement struct {
	Label string  `yaml:"label"`
	Items [][]Run `yaml:"items"`
}

// CodeElement is monospaced verbatim text.
type CodeElement struct {
	Language string `yaml:"language,omitempty"`
	Code     string `yaml:"code"`
}

func (HeadingElement) ElementKind() ElementKind   { return KindHeading }
func (ParagraphElement) ElementKind() ElementKind { return KindParagraph }
func (QuoteElement) ElementKind() ElementKind     { return KindQuote }
func (ListElement) ElementKind() ElementKind      { return KindList }
func (CalloutElement) ElementKind() ElementKind   { return KindCallout }
func (CodeElement) ElementKind() ElementKind      { return KindCode }

func (HeadingElement) element()   {}
func (ParagraphElement) element() {}
func (QuoteElement) element()     {}
func (ListElement) element()      {}
func (CalloutElement) element()   {}
func (CodeElement) element()      {}

// MarshalYAML tags every element with its kind so dumps stay readable.
func (s Section) MarshalYAML() (any, error) {
	type tagged map[ElementKind]Element
	elems := make([]tagged, len(s.Elements))
	for i, e := range s.Elements {
		elems[i] = tagged{e.ElementKind(): e}
	}
	return struct {
		Header   Header   `yaml:"header"`
		Footer   Footer   `yaml:"footer"`
		Elements []tagged `yaml:"elements"`
	}{s.Header, s.Footer, elems}, nil
}

// Run is a span of text sharing one style. A run with a URL and no Image
// flag is a hyperlink; with Image set, Text is the alternative text and
// URL the image source.
type Run struct {
	Text   string `yaml:"text"`
	URL    string `yaml:"url,omitempty"`
	Bold   bool   `yaml:"bold,omitempty"`
	Italic bool   `yaml:"italic,omitempty"`
	Code   bool   `yaml:"code,omitempty"`
	Image  bool   `yaml:"image,omitempty"`
}

// IsLink reports whether r is a hyperlink run.
func (r Run) IsLink() bool { return r.URL != "" && !r.Image }

// PlainText concatenates the text of runs.
func PlainText(runs []Run) string {
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

package docmark

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-docmark/internal/dateutil"
	"github.com/alnah/go-docmark/internal/markup"
	"github.com/alnah/go-docmark/internal/printdoc"
)

// Parsed block model.
type (
	Block      = markup.Block
	Heading    = markup.Heading
	Paragraph  = markup.Paragraph
	Blockquote = markup.Blockquote
	List       = markup.List
	Callout    = markup.Callout
	CodeBlock  = markup.CodeBlock
	Document   = markup.Document
	Metadata   = markup.Metadata
)

// Print model.
type (
	PrintDocument = printdoc.Document
	PrintSection  = printdoc.Section
	TOCEntry      = printdoc.TOCEntry
	Element       = printdoc.Element
	Run           = printdoc.Run
)

// Parse parses text into blocks with the default callout predicate.
func Parse(text string) Document {
	return markup.Parse(text)
}

// ParseCreatedAt parses an ISO-8601 date or RFC 3339 timestamp.
func ParseCreatedAt(s string) (time.Time, error) {
	t, err := dateutil.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidCreatedAt, s)
	}
	return t, nil
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate returns nil for a nil receiver, which means defaults.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, _, ok := paperSize(p.Size); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns paper width and height in inches.
func (p *PageSettings) dimensions() (width, height float64) {
	width, height, _ = paperSize(p.Size)
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

func paperSize(size string) (width, height float64, ok bool) {
	switch strings.ToLower(size) {
	case PageSizeLetter:
		return 8.5, 11, true
	case PageSizeA4:
		return 8.27, 11.69, true
	case PageSizeLegal:
		return 8.5, 14, true
	}
	return 0, 0, false
}

// Input is one render request.
type Input struct {
	Text     string   // Source markup (required)
	Metadata Metadata // Cover and header decoration, validated before rendering

	// TrackingContext names the link campaign. Empty means the title.
	TrackingContext string

	Page     *PageSettings // PDF page settings (nil = defaults)
	HTMLOnly bool          // Skip PDF generation

	// BaseDir anchors relative image and link targets in the PDF.
	// Empty leaves them as written.
	BaseDir string
}

// Result holds every projection of one document.
type Result struct {
	Blocks    Document       // Parsed block sequence
	Print     *PrintDocument // Print model
	PrintHTML string         // Print model laid out as HTML
	Hypertext string         // Sanitized CMS body
	PDF       []byte         // Empty when Input.HTMLOnly is set
}

package docmark

import (
	"time"

	"github.com/alnah/go-docmark/internal/markup"
)

// defaultTimeout bounds PDF generation when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Tracking configures link tracking parameters. Empty fields use defaults;
// an empty Campaign derives it from the tracking context.
type Tracking struct {
	Source   string
	Medium   string
	Campaign string
}

// PrintSettings configures the print model.
type PrintSettings struct {
	LogoURL       string  // Cover and header logo, passed through as is
	TOCTitle      string  // Default "Contents"
	CalloutLabel  string  // Default "TL;DR"
	DateFormat    string  // dateutil tokens or preset, default "MMMM D, YYYY"
	PageIndicator string  // Supports {page} and {total}
	BaseFontSize  float64 // Points, 0 = default
	BreakBefore   int     // New section before headings up to this level, 0 = never
	NoNumbering   bool    // Drop "1.2." heading numbers
}

// HypertextSettings configures the CMS body.
type HypertextSettings struct {
	CalloutLabel   string
	CalloutStyle   string // Inline CSS of the callout box
	HighlightStyle string // Chroma style for StyleSheet
}

// LayoutSettings configures the print HTML.
type LayoutSettings struct {
	AssetPath string // Custom styles/ and templates/ directory
	Style     string // Style name, default "default"
	Template  string // Template name, default "print"
	CSS       string // Extra CSS appended to the style
	Lang      string // html lang attribute
}

// Option configures a Pipeline.
type Option func(*pipelineConfig)

type pipelineConfig struct {
	timeout   time.Duration
	matcher   markup.Matcher
	tracking  *Tracking
	print     PrintSettings
	hypertext HypertextSettings
	layout    LayoutSettings
	pdf       pdfConverter
}

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docmark: WithTimeout duration must be positive")
	}
	return func(c *pipelineConfig) {
		c.timeout = d
	}
}

// WithTracking enables link tracking.
func WithTracking(t Tracking) Option {
	return func(c *pipelineConfig) {
		c.tracking = &t
	}
}

// WithCalloutMatcher replaces the callout marker predicate, e.g. with a
// stricter prefix match. Panics if m is nil.
func WithCalloutMatcher(m func(line string) bool) Option {
	if m == nil {
		panic("docmark: WithCalloutMatcher matcher must not be nil")
	}
	return func(c *pipelineConfig) {
		c.matcher = m
	}
}

// WithPrintSettings configures the print model.
func WithPrintSettings(s PrintSettings) Option {
	return func(c *pipelineConfig) {
		c.print = s
	}
}

// WithHypertextSettings configures the CMS body.
func WithHypertextSettings(s HypertextSettings) Option {
	return func(c *pipelineConfig) {
		c.hypertext = s
	}
}

// WithLayoutSettings configures the print HTML.
func WithLayoutSettings(s LayoutSettings) Option {
	return func(c *pipelineConfig) {
		c.layout = s
	}
}

// withPDFConverter injects a PDF backend, for tests.
func withPDFConverter(p pdfConverter) Option {
	return func(c *pipelineConfig) {
		c.pdf = p
	}
}

// HasMarkerPrefix matches lines starting with the callout marker. Pass it
// to WithCalloutMatcher to stop prose mentions from opening callouts.
func HasMarkerPrefix(line string) bool {
	return markup.HasMarkerPrefix(line)
}

package docmark

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-docmark/internal/assets"
	"github.com/alnah/go-docmark/internal/hypertext"
	"github.com/alnah/go-docmark/internal/layout"
	"github.com/alnah/go-docmark/internal/markup"
	"github.com/alnah/go-docmark/internal/pathrewrite"
	"github.com/alnah/go-docmark/internal/printdoc"
	"github.com/alnah/go-docmark/internal/tracking"
)

// Pipeline parses a document once and projects it to print and hypertext.
// Create with NewPipeline, call Render per document and Close when done.
// Render is safe for concurrent use; PDF output shares one browser.
type Pipeline struct {
	timeout   time.Duration
	parser    *markup.Parser
	tracker   *tracking.Tracker // nil when tracking is off
	print     *printdoc.Renderer
	hypertext *hypertext.Renderer
	layout    *layout.Engine
	pdf       pdfConverter
}

// NewPipeline creates a Pipeline. The browser is started on the first PDF.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	cfg := pipelineConfig{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pipeline{
		timeout:   cfg.timeout,
		parser:    markup.NewParser(),
		hypertext: newHypertextRenderer(cfg.hypertext),
		pdf:       cfg.pdf,
	}
	if cfg.matcher != nil {
		p.parser = markup.NewParser(markup.WithCalloutMatcher(cfg.matcher))
	}
	if t := cfg.tracking; t != nil {
		p.tracker = tracking.New(
			tracking.WithSource(t.Source),
			tracking.WithMedium(t.Medium),
			tracking.WithCampaign(t.Campaign),
		)
	}

	var err error
	if p.print, err = newPrintRenderer(cfg.print); err != nil {
		return nil, err
	}
	if p.layout, err = newLayoutEngine(cfg.layout); err != nil {
		return nil, err
	}
	if p.pdf == nil {
		p.pdf = newRodConverter(cfg.timeout)
	}
	return p, nil
}

func newPrintRenderer(s PrintSettings) (*printdoc.Renderer, error) {
	opts := []printdoc.Option{
		printdoc.WithLogoURL(s.LogoURL),
		printdoc.WithTOCTitle(s.TOCTitle),
		printdoc.WithCalloutLabel(s.CalloutLabel),
		printdoc.WithPageIndicator(s.PageIndicator),
		printdoc.WithBreakBefore(max(min(s.BreakBefore, 3), 0)),
		printdoc.WithNumbering(!s.NoNumbering),
	}
	if s.DateFormat != "" {
		opts = append(opts, printdoc.WithDateFormat(s.DateFormat))
	}
	if s.BaseFontSize > 0 {
		opts = append(opts, printdoc.WithBaseFontSize(s.BaseFontSize))
	}
	return printdoc.New(opts...)
}

func newHypertextRenderer(s HypertextSettings) *hypertext.Renderer {
	opts := []hypertext.Option{
		hypertext.WithCalloutLabel(s.CalloutLabel),
		hypertext.WithHighlightStyle(s.HighlightStyle),
	}
	if s.CalloutStyle != "" {
		opts = append(opts, hypertext.WithCalloutStyle(s.CalloutStyle))
	}
	return hypertext.New(opts...)
}

func newLayoutEngine(s LayoutSettings) (*layout.Engine, error) {
	opts := []layout.Option{
		layout.WithStyle(s.Style),
		layout.WithTemplate(s.Template),
		layout.WithCSS(s.CSS),
		layout.WithLang(s.Lang),
	}
	if s.AssetPath != "" {
		resolver, err := assets.NewAssetResolver(s.AssetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		opts = append(opts, layout.WithAssetLoader(resolver))
	}
	e, err := layout.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayout, err)
	}
	return e, nil
}

// Render validates the metadata, tags links, parses the text once and runs
// both renderers concurrently on the same Document. Unless input.HTMLOnly
// is set, the print HTML is then converted to PDF within the timeout.
// Internal panics are returned as errors.
func (p *Pipeline) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer recoverInto(&err)

	if err := p.validateInput(input); err != nil {
		return nil, err
	}

	text := input.Text
	if p.tracker != nil {
		tctx := input.TrackingContext
		if tctx == "" {
			tctx = input.Metadata.Title
		}
		text = p.tracker.Rewrite(text, tctx)
	}
	doc := p.parser.Parse(text)

	res := &Result{Blocks: doc}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverInto(&err)
		res.Print = p.print.Render(doc, input.Metadata)
		printHTML, err := p.layout.Render(res.Print)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLayout, err)
		}
		res.PrintHTML = printHTML
		return gctx.Err()
	})
	g.Go(func() (err error) {
		defer recoverInto(&err)
		res.Hypertext = p.hypertext.Render(doc, input.Metadata)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if input.HTMLOnly {
		return res, nil
	}

	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	page, err := pathrewrite.Rewrite(res.PrintHTML, input.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayout, err)
	}
	res.PDF, err = p.pdf.ToPDF(pctx, page, p.pdfOptions(res.Print, input.Page))
	if err != nil {
		// rod reports deadlines as plain errors
		if cerr := pctx.Err(); cerr != nil {
			return nil, fmt.Errorf("converting to PDF: %w: %w", err, cerr)
		}
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return res, nil
}

// recoverInto turns a panic into an internal error. Each goroutine defers
// its own call since recover only sees the current one.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("internal error: %v", r)
	}
}

// StyleSheet returns the CSS the CMS needs for highlighted code blocks.
func (p *Pipeline) StyleSheet() (string, error) {
	var sb strings.Builder
	if err := p.hypertext.StyleSheet(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Close releases the browser.
func (p *Pipeline) Close() error {
	if p.pdf != nil {
		return p.pdf.Close()
	}
	return nil
}

// pdfOptions takes header and footer from the first content section; all
// sections share the same decoration.
func (p *Pipeline) pdfOptions(doc *PrintDocument, page *PageSettings) *pdfOptions {
	opts := &pdfOptions{Page: page}
	if len(doc.Sections) > 0 {
		opts.Header = doc.Sections[0].Header
		opts.Footer = doc.Sections[0].Footer
	}
	return opts
}

// validateInput is the trust boundary for callers that build Input by
// hand; the CLI validates configuration earlier. Empty text is valid.
func (p *Pipeline) validateInput(input Input) error {
	if err := input.Metadata.Validate(); err != nil {
		return err
	}
	return input.Page.Validate()
}

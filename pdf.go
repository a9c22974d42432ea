package docmark

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docmark/internal/fileutil"
	"github.com/alnah/go-docmark/internal/layout"
	"github.com/alnah/go-docmark/internal/printdoc"
	"github.com/alnah/go-docmark/internal/process"
)

// pdfConverter abstracts print HTML to PDF conversion.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer renders an HTML file, so tests can run without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds page decoration and dimensions.
type pdfOptions struct {
	Page   *PageSettings
	Header printdoc.Header
	Footer printdoc.Footer
}

// Extra space above and below the content for Chrome's header and footer.
const chromeBandInches = 0.35

// rodRenderer drives headless Chrome. Rod downloads Chromium on first use
// unless ROD_BROWSER_BIN points at an installed one.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.browser = browser
	return nil
}

// Close closes the browser and kills any Chrome helper left behind.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile loads a local HTML file and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	fileURL, err := fileutil.ToFileURL(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return buf, nil
}

// buildPDFOptions maps page settings and decoration to Chrome's print
// parameters. Header and footer are shown only when they carry content.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	page := DefaultPageSettings()
	var header, footer string
	if opts != nil {
		if opts.Page != nil {
			page = opts.Page
		}
		header = layout.HeaderTemplate(opts.Header)
		footer = layout.FooterTemplate(opts.Footer)
	}
	width, height := page.dimensions()

	out := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}

	hasHeader := opts != nil && (opts.Header != printdoc.Header{})
	hasFooter := opts != nil && (opts.Footer != printdoc.Footer{})
	if hasHeader || hasFooter {
		out.DisplayHeaderFooter = true
		out.HeaderTemplate = header
		out.FooterTemplate = footer
		if hasHeader {
			out.MarginTop = floatPtr(page.Margin + chromeBandInches)
		}
		if hasFooter {
			out.MarginBottom = floatPtr(page.Margin + chromeBandInches)
		}
	}
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter writes HTML to a temp file and renders it.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF converts print HTML to PDF bytes.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

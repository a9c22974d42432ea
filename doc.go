// Package docmark parses a small line-oriented markup dialect once and
// projects the result into a paginated print document and sanitized
// hypertext for a CMS.
//
// # Quick Start
//
//	p, err := docmark.NewPipeline()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	result, err := p.Render(ctx, docmark.Input{
//	    Text: "# Hello\nTL;DR\n- short\n## Details\nWorld",
//	    Metadata: docmark.Metadata{
//	        Title:     "Hello",
//	        CreatedAt: time.Now(),
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.pdf", result.PDF, 0o600)
//
// result.Hypertext is the CMS body, result.Print the print model and
// result.PrintHTML its HTML layout. Set Input.HTMLOnly to skip the PDF.
//
// # Pipeline
//
//  1. Link tracking: absolute http(s) links get utm_* parameters (opt-in)
//  2. Parsing into blocks: headings, paragraphs, quotes, lists, callouts, code
//  3. Print model and hypertext, rendered concurrently from the same blocks
//  4. Print HTML layout and PDF rendering via headless Chrome (go-rod)
//
// # Configuration
//
//	p, err := docmark.NewPipeline(
//	    docmark.WithTimeout(time.Minute),
//	    docmark.WithTracking(docmark.Tracking{Source: "newsletter"}),
//	    docmark.WithPrintSettings(docmark.PrintSettings{LogoURL: "https://cdn.example.com/logo.png"}),
//	    docmark.WithCalloutMatcher(docmark.HasMarkerPrefix),
//	)
//
// # Parallel Processing
//
//	pool := docmark.NewPipelinePool(docmark.ResolvePoolSize(0))
//	defer pool.Close()
//
//	p, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(p)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). Set ROD_BROWSER_BIN to use
// an installed binary and ROD_NO_SANDBOX=1 in containers.
package docmark

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/fileutil"
	"github.com/alnah/go-docmark/internal/slug"
	"github.com/alnah/go-docmark/internal/yamlutil"
)

// filePermissions leaves outputs readable by everyone.
const filePermissions = 0o644

// Output file suffixes, appended to the title slug.
const (
	extHypertext = ".html"
	extPrintHTML = ".print.html"
	extPrintYAML = ".print.yaml"
	extPDF       = ".pdf"
)

// Sentinel errors for batch operations.
var (
	ErrReadSource  = errors.New("failed to read source file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrPoolInit    = errors.New("failed to initialize render pipeline")
)

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath string
	Outputs   []string
	Err       error
	Duration  time.Duration
}

// renderParams groups parameters shared across the batch.
type renderParams struct {
	page      *docmark.PageSettings
	htmlOnly  bool
	printHTML bool
	yaml      bool
	now       func() time.Time
	names     *outputNames
}

// renderBatch processes files concurrently using the pool.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]RenderResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire()
			if err != nil {
				// Pipeline creation failed, mark this worker's jobs as failed
				for idx := range jobs {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrPoolInit, err),
					}
				}
				return
			}
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// output is one file to write for a rendered document.
type output struct {
	ext  string
	data []byte
}

// renderFile renders one source file and writes every requested output.
func renderFile(ctx context.Context, r Renderer, f FileToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadSource, err))
	}

	src, err := docmark.ParseSource(content, f.InputPath)
	if err != nil {
		return fail(err)
	}
	if src.Metadata.CreatedAt.IsZero() {
		src.Metadata.CreatedAt = modTime(f.InputPath, params.now)
	}

	res, err := r.Render(ctx, docmark.Input{
		Text:     src.Text,
		Metadata: src.Metadata,
		Page:     params.page,
		HTMLOnly: params.htmlOnly,
		BaseDir:  filepath.Dir(f.InputPath),
	})
	if err != nil {
		return fail(err)
	}

	outputs := []output{{extHypertext, []byte(res.Hypertext)}}
	if params.printHTML || params.htmlOnly {
		outputs = append(outputs, output{extPrintHTML, []byte(res.PrintHTML)})
	}
	if params.yaml {
		data, err := yamlutil.Marshal(res.Print)
		if err != nil {
			return fail(fmt.Errorf("encoding print model: %w", err))
		}
		outputs = append(outputs, output{extPrintYAML, data})
	}
	if !params.htmlOnly {
		outputs = append(outputs, output{extPDF, res.PDF})
	}

	base := params.names.claim(f.OutputDir, slug.Filename(src.Metadata.Title, ""))
	for _, o := range outputs {
		path := filepath.Join(f.OutputDir, base+o.ext)
		if err := fileutil.WriteFile(path, o.data, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.Outputs = append(result.Outputs, path)
	}

	result.Duration = time.Since(start)
	return result
}

// modTime stands in for a missing created_at.
func modTime(path string, now func() time.Time) time.Time {
	if info, err := os.Stat(path); err == nil {
		return info.ModTime()
	}
	return now()
}

// outputNames keeps base names unique per output directory within a batch.
type outputNames struct {
	mu   sync.Mutex
	seen map[string]bool
}

// claim returns base, or base-2, base-3, ... when already taken in dir.
func (n *outputNames) claim(dir, base string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seen == nil {
		n.seen = make(map[string]bool)
	}

	name := base
	for i := 2; n.seen[filepath.Join(dir, name)]; i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	n.seen[filepath.Join(dir, name)] = true
	return name
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
	FirstErr  error
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			if summary.FirstErr == nil {
				summary.FirstErr = r.Err
			}
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each render and returns the tally. A single failed
// file is left to the caller to report.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", r.InputPath, errorMessage(r.Err))
			}
			continue
		}
		if quiet {
			continue
		}
		for _, out := range r.Outputs {
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, out, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary
}

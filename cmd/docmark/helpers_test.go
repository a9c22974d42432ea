package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/config"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// weeklyNotes is a source with front matter and a callout.
const weeklyNotes = `---
title: Weekly Notes
created_at: "2025-03-01"
status: draft
---
## Intro
Some **bold** text.
TL;DR:
- point A
- point B
`

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock renderer and pool
// ---------------------------------------------------------------------------

// mockRenderer records inputs and returns canned results.
type mockRenderer struct {
	mu     sync.Mutex
	inputs []docmark.Input
	err    error
}

func (m *mockRenderer) Render(_ context.Context, in docmark.Input) (*docmark.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	res := &docmark.Result{
		Print:     &docmark.PrintDocument{Title: in.Metadata.Title},
		PrintHTML: "<html>" + in.Metadata.Title + "</html>",
		Hypertext: "<p>" + in.Metadata.Title + "</p>",
	}
	if !in.HTMLOnly {
		res.PDF = []byte("%PDF-1.4 mock")
	}
	return res, nil
}

func (m *mockRenderer) getInputs() []docmark.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]docmark.Input(nil), m.inputs...)
}

// testPool hands out one shared renderer.
type testPool struct {
	mu         sync.Mutex
	r          Renderer
	size       int
	acquireErr error
	closed     bool
}

func (p *testPool) Acquire() (Renderer, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.r, nil
}

func (p *testPool) Release(Renderer) {}

func (p *testPool) Size() int { return p.size }

func (p *testPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pool   *testPool
}

func newTestEnv(r Renderer) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   &testPool{r: r, size: 2},
	}
	te.Environment = &Environment{
		Now:     func() time.Time { return fixedNow },
		Stdout:  te.stdout,
		Stderr:  te.stderr,
		Config:  config.DefaultConfig(),
		NewPool: func(int, ...docmark.Option) Pool { return te.pool },
	}
	return te
}

// setupTestDir creates a temp directory with the given file structure.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("creating dir for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
	return dir
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s not to exist", path)
	}
}

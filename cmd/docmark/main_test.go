package main

// Notes:
// - runMain: we test routing and exit codes; rendering itself is covered in
//   render_test.go with a mock renderer.
// - poolAdapter: Acquire builds a real Pipeline, which starts no browser
//   until a PDF is requested.

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	docmark "github.com/alnah/go-docmark"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command routing
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"docmark"}, ExitUsage, "", "Usage: docmark"},
		{"version", []string{"docmark", "version"}, ExitSuccess, "go-docmark dev", ""},
		{"help", []string{"docmark", "help"}, ExitSuccess, "Commands:", ""},
		{"dash h", []string{"docmark", "-h"}, ExitSuccess, "Commands:", ""},
		{"help render", []string{"docmark", "help", "render"}, ExitSuccess, "--html-only", ""},
		{"help unknown", []string{"docmark", "help", "bake"}, ExitUsage, "", "Unknown command: bake"},
		{"unknown command", []string{"docmark", "bake"}, ExitUsage, "", "Unknown command: bake"},
		{"render help flag", []string{"docmark", "render", "--help"}, ExitSuccess, "Usage: docmark render", ""},
		{"inspect help flag", []string{"docmark", "inspect", "-h"}, ExitSuccess, "Usage: docmark inspect", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(&mockRenderer{})
			if code := runMain(tt.args, env.Environment); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout, tt.wantStdout)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_MarkdownShorthand(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"notes.md": weeklyNotes})
	env := newTestEnv(&mockRenderer{})

	code := runMain([]string{"docmark", filepath.Join(dir, "notes.md"), "--html-only"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
	}
	assertExists(t, filepath.Join(dir, "weekly-notes.html"))
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg, name string
		want      bool
	}{
		{"render", "render", true},
		{"Render", "render", false},
		{"-h", "help", true},
		{"--help", "help", true},
		{"-h", "render", false},
		{"inspect", "render", false},
	}

	for _, tt := range tests {
		if got := isCommand(tt.arg, tt.name); got != tt.want {
			t.Errorf("isCommand(%q, %q) = %v, want %v", tt.arg, tt.name, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPoolAdapter - Pool adapter over docmark.PipelinePool
// ---------------------------------------------------------------------------

func TestPoolAdapter_Size(t *testing.T) {
	t.Parallel()

	pool := newPipelinePool(3)
	defer pool.Close()

	if pool.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pool.Size())
	}
}

func TestPoolAdapter_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := newPipelinePool(1)
	defer pool.Close()

	r, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	if r == nil {
		t.Fatal("Acquire() returned nil")
	}
	pool.Release(r)

	again, err := pool.Acquire()
	if err != nil {
		t.Fatalf("second Acquire() error: %v", err)
	}
	if again != r {
		t.Error("released pipeline was not reused")
	}
	pool.Release(again)
}

// wrongTypeRenderer is a Renderer that is NOT *docmark.Pipeline.
type wrongTypeRenderer struct{}

func (wrongTypeRenderer) Render(context.Context, docmark.Input) (*docmark.Result, error) {
	return &docmark.Result{}, nil
}

func TestPoolAdapter_Release_WrongType(t *testing.T) {
	t.Parallel()

	pool := newPipelinePool(1)
	defer pool.Close()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for wrong type, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic message = %q, want it to contain %q", msg, "unexpected type")
		}
	}()

	pool.Release(wrongTypeRenderer{})
}

func TestPoolAdapter_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	pool := newPipelinePool(1)
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := pool.Acquire(); err == nil {
		t.Error("Acquire() after Close() returned no error")
	}
}

// ---------------------------------------------------------------------------
// TestVersion - Version variable
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Single files and directory walks
// ---------------------------------------------------------------------------

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.MD": "# Doc"})
	in := filepath.Join(dir, "doc.MD")

	tests := []struct {
		name      string
		outputDir string
		want      string
	}{
		{"next to source", "", dir},
		{"output dir", filepath.Join(dir, "out"), filepath.Join(dir, "out")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := discoverFiles(in, tt.outputDir)
			if err != nil {
				t.Fatalf("discoverFiles() error: %v", err)
			}
			want := []FileToRender{{InputPath: in, OutputDir: tt.want}}
			if diff := cmp.Diff(want, files); diff != "" {
				t.Errorf("files mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.md":             "# A",
		"b.markdown":       "# B",
		"skip.txt":         "x",
		"nested/c.md":      "# C",
		".git/d.md":        "# D",
		"nested/.tmp/e.md": "# E",
	})
	out := filepath.Join(t.TempDir(), "out")

	files, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error: %v", err)
	}
	want := []FileToRender{
		{InputPath: filepath.Join(dir, "a.md"), OutputDir: out},
		{InputPath: filepath.Join(dir, "b.markdown"), OutputDir: out},
		{InputPath: filepath.Join(dir, "nested", "c.md"), OutputDir: filepath.Join(out, "nested")},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.txt": "x"})

	if _, err := discoverFiles(filepath.Join(dir, "doc.txt"), ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("error = %v, want ErrInvalidExtension", err)
	}
	if _, err := discoverFiles(filepath.Join(dir, "missing.md"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}

	files, err := discoverFiles(t.TempDir(), "")
	if err != nil {
		t.Fatalf("empty dir error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want none", files)
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker count bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{1, false},
		{8, false},
		{9, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}

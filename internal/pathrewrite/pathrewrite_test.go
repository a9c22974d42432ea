package pathrewrite_test

// Notes:
// - Rewrite is tested through full pages, the shape the layout engine emits.
// - Expected file URLs are built with fileutil.ToFileURL so the cases hold on
//   every OS.

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docmark/internal/fileutil"
	"github.com/alnah/go-docmark/internal/pathrewrite"
)

func page(body string) string {
	return "<!DOCTYPE html><html><head></head><body>" + body + "</body></html>"
}

func fileURL(t *testing.T, path string) string {
	t.Helper()
	u, err := fileutil.ToFileURL(path)
	if err != nil {
		t.Fatalf("ToFileURL(%q) error: %v", path, err)
	}
	return u
}

// ---------------------------------------------------------------------------
// TestRewrite - Relative targets anchored to the base directory
// ---------------------------------------------------------------------------

func TestRewrite(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"image", `<img src="img/a.png">`, `src="` + fileURL(t, filepath.Join(base, "img", "a.png")) + `"`},
		{"dot slash", `<img src="./a.png">`, `src="` + fileURL(t, filepath.Join(base, "a.png")) + `"`},
		{"link keeps fragment", `<a href="other.md#intro">x</a>`, `href="` + fileURL(t, filepath.Join(base, "other.md")) + `#intro"`},
		{"https untouched", `<img src="https://cdn.example.com/a.png">`, `src="https://cdn.example.com/a.png"`},
		{"data untouched", `<img src="data:image/png;base64,AA==">`, `src="data:image/png;base64,AA=="`},
		{"anchor untouched", `<a href="#top">x</a>`, `href="#top"`},
		{"mailto untouched", `<a href="mailto:a@b.c">x</a>`, `href="mailto:a@b.c"`},
		{"absolute untouched", `<img src="/abs/a.png">`, `src="/abs/a.png"`},
		{"traversal untouched", `<img src="../../etc/passwd">`, `src="../../etc/passwd"`},
		{"other elements untouched", `<script src="x.js"></script>`, `src="x.js"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := pathrewrite.Rewrite(page(tt.body), base)
			if err != nil {
				t.Fatalf("Rewrite() error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Rewrite() = %s\nwant it to contain %s", got, tt.want)
			}
		})
	}
}

func TestRewrite_EmptyBaseDir(t *testing.T) {
	t.Parallel()

	in := page(`<img src="a.png">`)
	got, err := pathrewrite.Rewrite(in, "")
	if err != nil {
		t.Fatalf("Rewrite() error: %v", err)
	}
	if got != in {
		t.Errorf("Rewrite() = %q, want input unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestIsRelative - Target classification
// ---------------------------------------------------------------------------

func TestIsRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		want   bool
	}{
		{"a.png", true},
		{"dir/a.png", true},
		{"../a.png", true},
		{"", false},
		{"#frag", false},
		{"//cdn.example.com/a.png", false},
		{"http://example.com", false},
		{"file:///a.png", false},
		{"mailto:a@b.c", false},
		{"/abs", false},
	}

	for _, tt := range tests {
		if got := pathrewrite.IsRelative(tt.target); got != tt.want {
			t.Errorf("IsRelative(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

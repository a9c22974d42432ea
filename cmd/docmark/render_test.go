package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/config"
)

// ---------------------------------------------------------------------------
// TestRender_SingleFile - Default outputs next to the source
// ---------------------------------------------------------------------------

func TestRender_SingleFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"notes.md": weeklyNotes})
	mock := &mockRenderer{}
	env := newTestEnv(mock)

	code := runMain([]string{"docmark", "render", filepath.Join(dir, "notes.md")}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d\nstderr: %s", code, ExitSuccess, env.stderr)
	}

	assertExists(t, filepath.Join(dir, "weekly-notes.html"))
	assertExists(t, filepath.Join(dir, "weekly-notes.pdf"))
	assertNotExists(t, filepath.Join(dir, "weekly-notes.print.html"))

	body, err := os.ReadFile(filepath.Join(dir, "weekly-notes.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "<p>Weekly Notes</p>" {
		t.Errorf("hypertext = %q", body)
	}

	inputs := mock.getInputs()
	if len(inputs) != 1 {
		t.Fatalf("render calls = %d, want 1", len(inputs))
	}
	in := inputs[0]
	if in.Metadata.Title != "Weekly Notes" {
		t.Errorf("title = %q", in.Metadata.Title)
	}
	if in.Metadata.Status != "draft" {
		t.Errorf("status = %q", in.Metadata.Status)
	}
	if strings.Contains(in.Text, "created_at") {
		t.Error("front matter leaked into the text")
	}
	if in.HTMLOnly {
		t.Error("HTMLOnly = true, want false")
	}
	if in.Page == nil || in.Page.Size != docmark.PageSizeLetter {
		t.Errorf("page = %+v, want letter defaults", in.Page)
	}
	if !strings.Contains(env.stdout.String(), "Created ") {
		t.Errorf("stdout = %q, want Created lines", env.stdout)
	}
	if !env.pool.closed {
		t.Error("pool was not closed")
	}
}

// ---------------------------------------------------------------------------
// TestRender_Formats - --html-only, --print-html and --yaml
// ---------------------------------------------------------------------------

func TestRender_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   []string
		want    []string
		notWant []string
	}{
		{
			name:    "html only",
			flags:   []string{"--html-only"},
			want:    []string{".html", ".print.html"},
			notWant: []string{".pdf", ".print.yaml"},
		},
		{
			name:    "print html",
			flags:   []string{"--print-html"},
			want:    []string{".html", ".print.html", ".pdf"},
			notWant: []string{".print.yaml"},
		},
		{
			name:    "yaml",
			flags:   []string{"--yaml", "--html-only"},
			want:    []string{".html", ".print.yaml"},
			notWant: []string{".pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := setupTestDir(t, map[string]string{"notes.md": weeklyNotes})
			env := newTestEnv(&mockRenderer{})

			args := append([]string{"docmark", "render", filepath.Join(dir, "notes.md")}, tt.flags...)
			if code := runMain(args, env.Environment); code != ExitSuccess {
				t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
			}
			for _, ext := range tt.want {
				assertExists(t, filepath.Join(dir, "weekly-notes"+ext))
			}
			for _, ext := range tt.notWant {
				assertNotExists(t, filepath.Join(dir, "weekly-notes"+ext))
			}
		})
	}
}

func TestRender_YAMLContent(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"notes.md": weeklyNotes})
	env := newTestEnv(&mockRenderer{})

	code := runMain([]string{"docmark", "render", "--html-only", "--yaml", filepath.Join(dir, "notes.md")}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
	}
	data, err := os.ReadFile(filepath.Join(dir, "weekly-notes.print.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "title: Weekly Notes") {
		t.Errorf("yaml dump = %q", data)
	}
}

// ---------------------------------------------------------------------------
// TestRender_Directory - Recursive discovery with mirrored output
// ---------------------------------------------------------------------------

func TestRender_Directory(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"docs/a.md":         "# Alpha\ntext",
		"docs/sub/b.md":     "# Beta\ntext",
		"docs/.drafts/c.md": "# Gamma\ntext",
		"docs/notes.txt":    "not markdown",
	})
	out := filepath.Join(dir, "out")
	env := newTestEnv(&mockRenderer{})

	code := runMain([]string{"docmark", "render", "--html-only", "-o", out, filepath.Join(dir, "docs")}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
	}

	assertExists(t, filepath.Join(out, "alpha.html"))
	assertExists(t, filepath.Join(out, "sub", "beta.html"))
	assertNotExists(t, filepath.Join(out, "gamma.html"))
	assertNotExists(t, filepath.Join(out, ".drafts", "gamma.html"))

	if !strings.Contains(env.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want summary", env.stdout)
	}
}

func TestRender_SameTitleGetsSuffix(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"one.md": "# Same\nfirst",
		"two.md": "# Same\nsecond",
	})
	env := newTestEnv(&mockRenderer{})

	code := runMain([]string{"docmark", "render", "--html-only", dir}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
	}
	assertExists(t, filepath.Join(dir, "same.html"))
	assertExists(t, filepath.Join(dir, "same-2.html"))
}

// ---------------------------------------------------------------------------
// TestRender_MetadataFallbacks - Title and created_at without front matter
// ---------------------------------------------------------------------------

func TestRender_MetadataFallbacks(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"plain.md": "# Plain Title\nOne two three."})
	mtime := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(dir, "plain.md"), mtime, mtime); err != nil {
		t.Fatal(err)
	}
	mock := &mockRenderer{}
	env := newTestEnv(mock)

	if code := runMain([]string{"docmark", "render", "--html-only", filepath.Join(dir, "plain.md")}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
	}

	in := mock.getInputs()[0]
	if in.Metadata.Title != "Plain Title" {
		t.Errorf("title = %q, want %q", in.Metadata.Title, "Plain Title")
	}
	if !in.Metadata.CreatedAt.Equal(mtime) {
		t.Errorf("created at = %v, want file mod time %v", in.Metadata.CreatedAt, mtime)
	}
	if in.Metadata.WordCount != 5 {
		t.Errorf("word count = %d, want 5", in.Metadata.WordCount)
	}
}

// ---------------------------------------------------------------------------
// TestRender_ExitCodes - Failures map to exit codes
// ---------------------------------------------------------------------------

func TestRender_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		files      map[string]string
		args       func(dir string) []string
		renderErr  error
		acquireErr error
		wantCode   int
		wantStderr string
	}{
		{
			name:     "missing input",
			args:     func(dir string) []string { return []string{filepath.Join(dir, "nope.md")} },
			wantCode: ExitIO,
		},
		{
			name:     "no input",
			args:     func(string) []string { return nil },
			wantCode: ExitIO,
		},
		{
			name:     "wrong extension",
			files:    map[string]string{"a.txt": "x"},
			args:     func(dir string) []string { return []string{filepath.Join(dir, "a.txt")} },
			wantCode: ExitUsage,
		},
		{
			name:       "bad created_at",
			files:      map[string]string{"a.md": "---\ncreated_at: \"yesterday\"\n---\n# A"},
			args:       func(dir string) []string { return []string{filepath.Join(dir, "a.md")} },
			wantCode:   ExitUsage,
			wantStderr: "hint:",
		},
		{
			name:       "browser failure",
			files:      map[string]string{"a.md": "# A"},
			args:       func(dir string) []string { return []string{filepath.Join(dir, "a.md")} },
			renderErr:  fmt.Errorf("%w: no chrome", docmark.ErrBrowserConnect),
			wantCode:   ExitBrowser,
			wantStderr: "hint:",
		},
		{
			name:       "pipeline init failure",
			files:      map[string]string{"a.md": "# A"},
			args:       func(dir string) []string { return []string{filepath.Join(dir, "a.md")} },
			acquireErr: errors.New("boom"),
			wantCode:   ExitGeneral,
			wantStderr: "boom",
		},
		{
			name:     "too many workers",
			files:    map[string]string{"a.md": "# A"},
			args:     func(dir string) []string { return []string{"-w", "99", filepath.Join(dir, "a.md")} },
			wantCode: ExitUsage,
		},
		{
			name:     "invalid timeout",
			files:    map[string]string{"a.md": "# A"},
			args:     func(dir string) []string { return []string{"--timeout", "soon", filepath.Join(dir, "a.md")} },
			wantCode: ExitUsage,
		},
		{
			name:     "invalid page size",
			files:    map[string]string{"a.md": "# A"},
			args:     func(dir string) []string { return []string{"-p", "tabloid", filepath.Join(dir, "a.md")} },
			wantCode: ExitUsage,
		},
		{
			name:     "invalid callout mode",
			files:    map[string]string{"a.md": "# A"},
			args:     func(dir string) []string { return []string{"--callout", "regex", filepath.Join(dir, "a.md")} },
			wantCode: ExitUsage,
		},
		{
			name:       "config not found",
			files:      map[string]string{"a.md": "# A"},
			args:       func(dir string) []string { return []string{"--config", "no-such-docmark-config", filepath.Join(dir, "a.md")} },
			wantCode:   ExitUsage,
			wantStderr: "hint:",
		},
		{
			name:     "unknown flag",
			args:     func(string) []string { return []string{"--bogus"} },
			wantCode: ExitUsage,
		},
		{
			name:     "two inputs",
			files:    map[string]string{"a.md": "# A", "b.md": "# B"},
			args:     func(dir string) []string { return []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")} },
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := setupTestDir(t, tt.files)
			env := newTestEnv(&mockRenderer{err: tt.renderErr})
			env.pool.acquireErr = tt.acquireErr

			args := append([]string{"docmark", "render"}, tt.args(dir)...)
			code := runMain(args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, env.stderr)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

func TestRender_BatchFailureReportsEachFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "# A", "b.md": "# B"})
	env := newTestEnv(&mockRenderer{err: fmt.Errorf("%w: crashed", docmark.ErrPDFGeneration)})

	code := runMain([]string{"docmark", "render", dir}, env.Environment)
	if code != ExitBrowser {
		t.Errorf("exit code = %d, want %d", code, ExitBrowser)
	}
	if got := strings.Count(env.stderr.String(), "FAILED "); got != 2 {
		t.Errorf("FAILED lines = %d, want 2\nstderr: %s", got, env.stderr)
	}
	if !strings.Contains(env.stderr.String(), "2 of 2 render(s) failed") {
		t.Errorf("stderr = %q, want batch summary", env.stderr)
	}
}

func TestRender_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"notes.md":    weeklyNotes,
		"docmark.yml": "output:\n  yaml: true\npdf:\n  pageSize: a4\n  orientation: landscape\n",
	})
	mock := &mockRenderer{}
	env := newTestEnv(mock)

	code := runMain([]string{"docmark", "render", "-c", filepath.Join(dir, "docmark.yml"), filepath.Join(dir, "notes.md")}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
	}
	assertExists(t, filepath.Join(dir, "weekly-notes.print.yaml"))

	page := mock.getInputs()[0].Page
	want := &docmark.PageSettings{Size: "a4", Orientation: "landscape", Margin: docmark.DefaultMargin}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("page settings mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_QuietAndVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flag    string
		want    string
		wantOut bool
	}{
		{"--quiet", "", false},
		{"--verbose", " -> ", true},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			dir := setupTestDir(t, map[string]string{"a.md": "# A"})
			env := newTestEnv(&mockRenderer{})

			if code := runMain([]string{"docmark", "render", "--html-only", tt.flag, dir}, env.Environment); code != ExitSuccess {
				t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
			}
			if got := env.stdout.Len() > 0; got != tt.wantOut {
				t.Errorf("stdout written = %v, want %v: %q", got, tt.wantOut, env.stdout)
			}
			if !strings.Contains(env.stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want %q", env.stdout, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI values override config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Print.Logo = "https://config.test/logo.png"
	cfg.Print.TOCTitle = "From config"

	flags := &renderFlags{
		callout: "prefix",
		print:   printFlags{logo: "https://flag.test/logo.png", breakBefore: 2, noNumbering: true},
		tracking: trackingFlags{
			campaign: "spring",
		},
		assets: assetFlags{style: "plain"},
		page:   pageFlags{size: "legal", margin: 1},
	}
	mergeFlags(flags, cfg)

	if cfg.Input.Callout != "prefix" {
		t.Errorf("callout = %q", cfg.Input.Callout)
	}
	if cfg.Print.Logo != "https://flag.test/logo.png" {
		t.Errorf("logo = %q, want flag value", cfg.Print.Logo)
	}
	if cfg.Print.TOCTitle != "From config" {
		t.Errorf("toc title = %q, want config value kept", cfg.Print.TOCTitle)
	}
	if cfg.Print.BreakBefore != 2 || !cfg.Print.DisableNumbering {
		t.Errorf("print = %+v", cfg.Print)
	}
	if !cfg.Tracking.Enabled || cfg.Tracking.Campaign != "spring" {
		t.Errorf("tracking = %+v, want enabled by --utm-campaign", cfg.Tracking)
	}
	if cfg.Layout.Style != "plain" {
		t.Errorf("style = %q", cfg.Layout.Style)
	}
	if cfg.PDF.PageSize != "legal" || cfg.PDF.Margin != 1 {
		t.Errorf("pdf = %+v", cfg.PDF)
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Flag > env > config
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		cfg     string
		want    time.Duration
		wantErr error
	}{
		{"nothing set", "", 0, "", 0, nil},
		{"config", "", 0, "90s", 90 * time.Second, nil},
		{"env beats config", "", 2 * time.Minute, "90s", 2 * time.Minute, nil},
		{"flag beats env", "45s", 2 * time.Minute, "90s", 45 * time.Second, nil},
		{"invalid flag", "soon", 0, "", 0, ErrInvalidTimeout},
		{"negative flag", "-5s", 0, "", 0, ErrInvalidTimeout},
		{"invalid config", "", 0, "later", 0, config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.PDF.Timeout = tt.cfg
			got, err := resolveTimeout(tt.flag, &envConfig{Timeout: tt.env}, cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("timeout = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPageSettings - Defaults, normalization, validation
// ---------------------------------------------------------------------------

func TestBuildPageSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pdf     config.PDFConfig
		want    *docmark.PageSettings
		wantErr error
	}{
		{
			name: "defaults",
			want: docmark.DefaultPageSettings(),
		},
		{
			name: "uppercase normalized",
			pdf:  config.PDFConfig{PageSize: "A4", Orientation: "Landscape", Margin: 1},
			want: &docmark.PageSettings{Size: "a4", Orientation: "landscape", Margin: 1},
		},
		{
			name:    "margin too large",
			pdf:     config.PDFConfig{Margin: 5},
			wantErr: docmark.ErrInvalidMargin,
		},
		{
			name:    "bad orientation",
			pdf:     config.PDFConfig{Orientation: "diagonal"},
			wantErr: docmark.ErrInvalidOrientation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.PDF = tt.pdf
			got, err := buildPageSettings(cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("page settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPipelineOptions - Optional settings add options
// ---------------------------------------------------------------------------

func TestPipelineOptions(t *testing.T) {
	t.Parallel()

	base := len(pipelineOptions(config.DefaultConfig(), 0))

	cfg := config.DefaultConfig()
	cfg.Tracking.Enabled = true
	cfg.Input.Callout = "PREFIX"
	if got := len(pipelineOptions(cfg, time.Minute)); got != base+3 {
		t.Errorf("options = %d, want %d", got, base+3)
	}

	// The options must build a working pipeline.
	p, err := docmark.NewPipeline(pipelineOptions(cfg, time.Minute)...)
	if err != nil {
		t.Fatalf("NewPipeline() error: %v", err)
	}
	defer p.Close()
}

// ---------------------------------------------------------------------------
// TestOutputNames - Unique base names per directory
// ---------------------------------------------------------------------------

func TestOutputNames(t *testing.T) {
	t.Parallel()

	var n outputNames
	got := []string{
		n.claim("a", "doc"),
		n.claim("a", "doc"),
		n.claim("b", "doc"),
		n.claim("a", "doc"),
		n.claim("a", "doc-2"),
	}
	want := []string{"doc", "doc-2", "doc", "doc-3", "doc-2-2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

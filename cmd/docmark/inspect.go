package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/config"
	"github.com/alnah/go-docmark/internal/markup"
)

// Inspect layout.
const (
	defaultWidth = 80
	minWidth     = 40
	labelWidth   = 10
	gutter       = 6 // index column plus spacing
)

// runInspectCmd prints the block sequence of one file.
func runInspectCmd(args []string, env *Environment) int {
	flags, positional, err := parseInspectFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'docmark help inspect' for usage.")
		return ExitUsage
	}
	if len(positional) != 1 {
		fmt.Fprintln(env.Stderr, "error: inspect takes exactly one file")
		return ExitUsage
	}

	if err := runInspect(positional[0], flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %s\n", errorMessage(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func runInspect(path string, flags *inspectFlags, env *Environment) error {
	cfg, err := loadConfig(flags.config, loadEnvConfig(), env)
	if err != nil {
		return err
	}
	if flags.callout != "" {
		cfg.Input.Callout = flags.callout
	}

	var opts []markup.Option
	switch strings.ToLower(cfg.Input.Callout) {
	case "", config.CalloutContains:
	case config.CalloutPrefix:
		opts = append(opts, markup.WithCalloutMatcher(markup.HasMarkerPrefix))
	default:
		return fmt.Errorf("%w: --callout %q (must be %s or %s)", ErrUsage, cfg.Input.Callout, config.CalloutContains, config.CalloutPrefix)
	}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	src, err := docmark.ParseSource(content, path)
	if err != nil {
		return err
	}

	in := newInspector(env.Stdout, inspectWidth(flags.width, env.Stdout), flags.noColor)
	in.write(src.Metadata, markup.NewParser(opts...).Parse(src.Text))
	return nil
}

// inspectWidth returns the flag width, else the terminal width, else
// defaultWidth, never below minWidth.
func inspectWidth(flagWidth int, w io.Writer) int {
	width := flagWidth
	if width <= 0 {
		width = defaultWidth
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
				width = tw
			}
		}
	}
	return max(width, minWidth)
}

// inspector writes a styled listing of a document.
type inspector struct {
	w      io.Writer
	width  int
	title  lipgloss.Style
	muted  lipgloss.Style
	labels map[markup.Kind]lipgloss.Style
}

func newInspector(w io.Writer, width int, noColor bool) *inspector {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	label := func(color string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}
	return &inspector{
		w:     w,
		width: width,
		title: r.NewStyle().Bold(true),
		muted: r.NewStyle().Faint(true),
		labels: map[markup.Kind]lipgloss.Style{
			markup.KindHeading:    label("#83a598"),
			markup.KindParagraph:  label("#ebdbb2"),
			markup.KindBlockquote: label("#d3869b"),
			markup.KindList:       label("#b8bb26"),
			markup.KindCallout:    label("#fabd2f"),
			markup.KindCode:       label("#fe8019"),
		},
	}
}

func (in *inspector) write(meta docmark.Metadata, doc markup.Document) {
	fmt.Fprintln(in.w, in.title.Render(meta.Title))

	var facts []string
	if !meta.CreatedAt.IsZero() {
		facts = append(facts, "created "+meta.CreatedAt.Format("2006-01-02"))
	}
	facts = append(facts, humanize.Comma(int64(meta.WordCount))+" words")
	facts = append(facts, strconv.Itoa(doc.Len())+" blocks")
	for _, s := range []string{meta.ContentType, meta.Status} {
		if s != "" {
			facts = append(facts, s)
		}
	}
	fmt.Fprintln(in.w, in.muted.Render(strings.Join(facts, " | ")))
	if meta.Summary != "" {
		fmt.Fprintln(in.w, wordwrap.String(meta.Summary, in.width))
	}
	fmt.Fprintln(in.w)

	for i, b := range doc.All() {
		in.writeBlock(i, b)
	}
}

func (in *inspector) writeBlock(i int, b markup.Block) {
	label, body := describe(b)
	padded := fmt.Sprintf("%-*s", labelWidth, label)
	fmt.Fprintf(in.w, "%4d  %s\n", i, in.labels[b.Kind()].Render(padded))

	if body == "" {
		return
	}
	if _, verbatim := b.(markup.CodeBlock); !verbatim {
		body = wordwrap.String(body, in.width-gutter)
	}
	fmt.Fprintln(in.w, indent.String(body, gutter))
}

// describe returns the label and body text shown for a block.
func describe(b markup.Block) (label, body string) {
	switch v := b.(type) {
	case markup.Heading:
		return "h" + strconv.Itoa(v.Level), v.Plain()
	case markup.Paragraph:
		return "paragraph", v.Text
	case markup.Blockquote:
		return "quote", v.Text
	case markup.List:
		return "list", bullets(v.Items)
	case markup.Callout:
		return "callout", bullets(v.Items)
	case markup.CodeBlock:
		if v.Language != "" {
			return "code:" + v.Language, v.Code
		}
		return "code", v.Code
	}
	return b.Kind().String(), ""
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}

// Package tracking rewrites link targets in raw markup to carry campaign
// tracking parameters.
package tracking

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/alnah/go-docmark/internal/slug"
)

// Default parameter values.
const (
	DefaultSource = "docmark"
	DefaultMedium = "content"
)

// Query parameter names, in the order they are appended.
const (
	ParamSource   = "utm_source"
	ParamMedium   = "utm_medium"
	ParamCampaign = "utm_campaign"
)

// fence opens and closes a code block.
const fence = "```"

// Inline link: optional "!" image marker, [text](target).
// Group 1 is the image marker, group 2 the text, group 3 the target.
var linkPattern = regexp.MustCompile(`(!?)\[([^\[\]\n]*)\]\(([^()\s]+)\)`)

// Tracker appends tracking parameters to absolute http(s) link targets.
// The zero value is not usable; create one with New.
type Tracker struct {
	source   string
	medium   string
	campaign string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithSource sets utm_source. Empty values are ignored.
func WithSource(s string) Option {
	return func(t *Tracker) {
		if s != "" {
			t.source = s
		}
	}
}

// WithMedium sets utm_medium. Empty values are ignored.
func WithMedium(m string) Option {
	return func(t *Tracker) {
		if m != "" {
			t.medium = m
		}
	}
}

// WithCampaign fixes utm_campaign instead of deriving it from the
// rewrite context. Empty values are ignored.
func WithCampaign(c string) Option {
	return func(t *Tracker) {
		if c != "" {
			t.campaign = c
		}
	}
}

// New creates a Tracker with DefaultSource and DefaultMedium.
func New(opts ...Option) *Tracker {
	t := &Tracker{source: DefaultSource, medium: DefaultMedium}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Rewrite returns text with tracking parameters added to every
// [text](url) link whose url is absolute http or https. The campaign is
// the slug of context unless fixed with WithCampaign.
//
// Images, links that already carry utm_source, relative or non-http
// targets and malformed pairs pass through unchanged, as does anything
// inside a fenced code block or a backtick code span. Text outside link
// targets is never altered.
func (t *Tracker) Rewrite(text, context string) string {
	if !strings.Contains(text, "](") {
		return text
	}

	campaign := t.campaign
	if campaign == "" {
		campaign = slug.Slug(context)
	}

	var sb strings.Builder
	sb.Grow(len(text))
	inFence := false
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case inFence:
			inFence = trimmed != fence
		case strings.HasPrefix(trimmed, fence):
			inFence = true
		default:
			line = t.rewriteLine(line, campaign)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// rewriteLine tags the links of one line, skipping links that start
// inside a code span.
func (t *Tracker) rewriteLine(line, campaign string) string {
	matches := linkPattern.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line
	}
	spans := codeSpans(line)

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		if line[m[2]:m[3]] == "!" || insideSpan(spans, m[0]) {
			continue
		}
		target, ok := t.tag(line[m[6]:m[7]], campaign)
		if !ok {
			continue
		}
		sb.WriteString(line[last:m[6]])
		sb.WriteString(target)
		last = m[7]
	}
	sb.WriteString(line[last:])
	return sb.String()
}

// codeSpans returns the [start, end) byte ranges of backtick code spans.
// A span closes on a backtick run of the same length as its opener; an
// opener without a match is literal text.
func codeSpans(line string) [][2]int {
	var spans [][2]int
	for i := 0; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}
		n := backticks(line[i:])
		closed := false
		for j := i + n; j < len(line); {
			if line[j] != '`' {
				j++
				continue
			}
			m := backticks(line[j:])
			if m == n {
				spans = append(spans, [2]int{i, j + m})
				i, closed = j+m, true
				break
			}
			j += m
		}
		if !closed {
			i += n
		}
	}
	return spans
}

func backticks(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	return n
}

func insideSpan(spans [][2]int, pos int) bool {
	for _, sp := range spans {
		if pos >= sp[0] && pos < sp[1] {
			return true
		}
	}
	return false
}

// tag appends the parameters to raw. It reports false when raw is left
// untouched.
func (t *Tracker) tag(raw, campaign string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return raw, false
	}
	if u.Query().Has(ParamSource) {
		return raw, false
	}

	base, fragment, hasFragment := strings.Cut(raw, "#")

	var sb strings.Builder
	sb.WriteString(base)
	switch {
	case !strings.Contains(base, "?"):
		sb.WriteByte('?')
	case !strings.HasSuffix(base, "?") && !strings.HasSuffix(base, "&"):
		sb.WriteByte('&')
	}
	writeParam(&sb, ParamSource, t.source)
	sb.WriteByte('&')
	writeParam(&sb, ParamMedium, t.medium)
	if campaign != "" {
		sb.WriteByte('&')
		writeParam(&sb, ParamCampaign, campaign)
	}
	if hasFragment {
		sb.WriteByte('#')
		sb.WriteString(fragment)
	}
	return sb.String(), true
}

func writeParam(sb *strings.Builder, key, value string) {
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(url.QueryEscape(value))
}

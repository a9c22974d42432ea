package markup

import (
	"regexp"
	"strings"
)

// CalloutMarker is the literal text that announces a callout.
const CalloutMarker = "TL;DR"

// fence opens and closes a code block.
const fence = "```"

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// List item: "-", "*" or "+" followed by whitespace
	listItemPattern = regexp.MustCompile(`^[-*+]\s+(.*)$`)
)

// Matcher reports whether a trimmed, non-blank line announces a callout.
type Matcher func(line string) bool

// ContainsMarker matches any line containing CalloutMarker, ignoring case.
// The match is not anchored: prose that merely mentions "tl;dr" also
// triggers callout consumption of the list items that follow it.
func ContainsMarker(line string) bool {
	return strings.Contains(strings.ToLower(line), strings.ToLower(CalloutMarker))
}

// HasMarkerPrefix matches only lines that start with CalloutMarker, ignoring
// case and an optional leading emphasis run ("**TL;DR:**").
func HasMarkerPrefix(line string) bool {
	line = strings.TrimLeft(line, "*_ ")
	return len(line) >= len(CalloutMarker) &&
		strings.EqualFold(line[:len(CalloutMarker)], CalloutMarker)
}

// Parser turns source text into a Document. A Parser is immutable and safe
// for concurrent use.
type Parser struct {
	isCallout Matcher
}

// Option configures a Parser.
type Option func(*Parser)

// WithCalloutMatcher replaces the callout marker predicate.
// Panics if m is nil (programmer error).
func WithCalloutMatcher(m Matcher) Option {
	if m == nil {
		panic("markup: WithCalloutMatcher matcher must not be nil")
	}
	return func(p *Parser) {
		p.isCallout = m
	}
}

// NewParser creates a Parser. The default callout predicate is ContainsMarker.
func NewParser(opts ...Option) *Parser {
	p := &Parser{isCallout: ContainsMarker}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses text with the default Parser.
func Parse(text string) Document {
	return defaultParser.Parse(text)
}

// Parse classifies every line of text into a block. It never fails:
// anything unrecognized becomes a Paragraph.
func (p *Parser) Parse(text string) Document {
	if text == "" {
		return Document{}
	}

	lines := strings.Split(crlfOrCR.ReplaceAllString(text, "\n"), "\n")
	var b builder

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			b.flush()
			continue
		}

		if strings.HasPrefix(line, fence) {
			b.flush()
			code, consumed := fencedCode(lines[i+1:])
			b.emit(CodeBlock{
				Language: strings.TrimSpace(strings.TrimPrefix(line, fence)),
				Code:     code,
			})
			i += consumed
			continue
		}

		if p.isCallout(line) {
			// A marker with no items after it stays ordinary text instead
			// of becoming an empty callout that swallows the line.
			if items, consumed := itemRun(lines[i+1:]); consumed > 0 {
				b.flush()
				b.emit(Callout{Items: items})
				i += consumed
				continue
			}
		}

		b.classify(line)
	}

	b.flush()
	return Document{blocks: b.blocks}
}

// builder accumulates blocks and the pending list run.
type builder struct {
	blocks  []Block
	pending []string
}

func (b *builder) emit(blk Block) {
	b.blocks = append(b.blocks, blk)
}

// flush emits the pending list, if any.
func (b *builder) flush() {
	if len(b.pending) == 0 {
		return
	}
	b.emit(List{Items: b.pending})
	b.pending = nil
}

// classify handles a trimmed line that is neither blank, a fence, nor a
// callout marker. Heading prefixes are checked longest first.
func (b *builder) classify(line string) {
	switch {
	case strings.HasPrefix(line, "### "):
		b.flush()
		b.emit(Heading{Level: 3, Text: strings.TrimSpace(line[4:])})
	case strings.HasPrefix(line, "## "):
		b.flush()
		b.emit(Heading{Level: 2, Text: strings.TrimSpace(line[3:])})
	case strings.HasPrefix(line, "# "):
		b.flush()
		b.emit(Heading{Level: 1, Text: strings.TrimSpace(line[2:])})
	case strings.HasPrefix(line, "> "):
		b.flush()
		b.emit(Blockquote{Text: strings.TrimSpace(line[2:])})
	default:
		if item, ok := listItem(line); ok {
			b.pending = append(b.pending, item)
			return
		}
		b.flush()
		b.emit(Paragraph{Text: line})
	}
}

// listItem strips the list marker from a trimmed line.
func listItem(line string) (string, bool) {
	m := listItemPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// itemRun collects the list items at the start of lines and reports how
// many lines were consumed. It stops at the first line that is not an item.
func itemRun(lines []string) ([]string, int) {
	var items []string
	for _, l := range lines {
		item, ok := listItem(strings.TrimSpace(l))
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items, len(items)
}

// fencedCode collects verbatim lines up to a closing fence and reports how
// many lines were consumed, including the closing fence. An unclosed fence
// runs to the end of the input.
func fencedCode(lines []string) (string, int) {
	for i, l := range lines {
		if strings.TrimSpace(l) == fence {
			return strings.Join(lines[:i], "\n"), i + 1
		}
	}
	return strings.Join(lines, "\n"), len(lines)
}

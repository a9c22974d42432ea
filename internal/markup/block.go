package markup

import (
	"iter"
	"slices"
)

// Kind identifies a Block variant.
type Kind int

const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindBlockquote
	KindList
	KindCallout
	KindCode
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindBlockquote:
		return "blockquote"
	case KindList:
		return "list"
	case KindCallout:
		return "callout"
	case KindCode:
		return "code"
	}
	return "unknown"
}

// Block is one unit of parsed document structure.
// The set of implementations is closed: Heading, Paragraph, Blockquote,
// List, Callout and CodeBlock.
type Block interface {
	Kind() Kind
	block()
}

// Heading is a section title of level 1 to 3.
type Heading struct {
	Level int
	Text  string
}

// Paragraph holds one line of prose with its inline markup intact.
type Paragraph struct {
	Text string
}

// Blockquote holds quoted text with its inline markup intact.
type Blockquote struct {
	Text string
}

// List is a maximal run of list items.
type List struct {
	Items []string
}

// Callout is the run of list items following a callout marker line.
type Callout struct {
	Items []string
}

// CodeBlock is a fenced block of verbatim text.
type CodeBlock struct {
	Language string
	Code     string
}

func (Heading) Kind() Kind    { return KindHeading }
func (Paragraph) Kind() Kind  { return KindParagraph }
func (Blockquote) Kind() Kind { return KindBlockquote }
func (List) Kind() Kind       { return KindList }
func (Callout) Kind() Kind    { return KindCallout }
func (CodeBlock) Kind() Kind  { return KindCode }

func (Heading) block()    {}
func (Paragraph) block()  {}
func (Blockquote) block() {}
func (List) block()       {}
func (Callout) block()    {}
func (CodeBlock) block()  {}

// Plain returns the heading text with inline markup removed.
func (h Heading) Plain() string { return ParseInline(h.Text).Plain() }

// Plain returns the paragraph text with inline markup removed.
func (p Paragraph) Plain() string { return ParseInline(p.Text).Plain() }

// Plain returns the quote text with inline markup removed.
func (q Blockquote) Plain() string { return ParseInline(q.Text).Plain() }

// Document is an ordered, read-only sequence of blocks.
// The zero value is an empty document.
type Document struct {
	blocks []Block
}

// NewDocument builds a Document from blocks, copying item slices so later
// changes by the caller do not leak into the document.
func NewDocument(blocks ...Block) Document {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		switch v := b.(type) {
		case List:
			v.Items = slices.Clone(v.Items)
			b = v
		case Callout:
			v.Items = slices.Clone(v.Items)
			b = v
		}
		out = append(out, b)
	}
	return Document{blocks: out}
}

// Len returns the number of blocks.
func (d Document) Len() int { return len(d.blocks) }

// At returns the i-th block. It panics if i is out of range.
func (d Document) At(i int) Block { return d.blocks[i] }

// Blocks returns a copy of the block sequence.
// Item slices inside List and Callout values are shared and must not be modified.
func (d Document) Blocks() []Block { return slices.Clone(d.blocks) }

// All iterates over the blocks in document order.
func (d Document) All() iter.Seq2[int, Block] {
	return func(yield func(int, Block) bool) {
		for i, b := range d.blocks {
			if !yield(i, b) {
				return
			}
		}
	}
}

// Headings returns the heading blocks in document order.
func (d Document) Headings() []Heading {
	var out []Heading
	for _, b := range d.blocks {
		if h, ok := b.(Heading); ok {
			out = append(out, h)
		}
	}
	return out
}

package markup

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrMissingCreatedAt = errors.New("creation timestamp is required")
	ErrNegativeWords    = errors.New("word count cannot be negative")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxSummaryLength     = 1000
	MaxContentTypeLength = 50
	MaxStatusLength      = 50
)

// Metadata describes a document for cover, header and footer decoration.
// It is supplied by the caller, never derived from blocks.
type Metadata struct {
	Title       string    `yaml:"title"`
	Summary     string    `yaml:"summary,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
	WordCount   int       `yaml:"word_count,omitempty"` // 0 means unknown
	ContentType string    `yaml:"content_type,omitempty"`
	Status      string    `yaml:"status,omitempty"`
}

// Validate checks the metadata before rendering.
func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if m.CreatedAt.IsZero() {
		return ErrMissingCreatedAt
	}
	if m.WordCount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeWords, m.WordCount)
	}

	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"title", m.Title, MaxTitleLength},
		{"summary", m.Summary, MaxSummaryLength},
		{"content type", m.ContentType, MaxContentTypeLength},
		{"status", m.Status, MaxStatusLength},
	}
	for _, l := range limits {
		if n := utf8.RuneCountInString(l.value); n > l.max {
			return fmt.Errorf("%w: %s has %d characters (max %d)", ErrFieldTooLong, l.name, n, l.max)
		}
	}
	return nil
}

// CountWords counts whitespace-separated words in the plain text of every
// block. Code blocks are skipped.
func CountWords(doc Document) int {
	n := 0
	count := func(s string) { n += len(strings.Fields(s)) }
	for _, b := range doc.blocks {
		switch v := b.(type) {
		case Heading:
			count(v.Plain())
		case Paragraph:
			count(v.Plain())
		case Blockquote:
			count(v.Plain())
		case List:
			for _, it := range v.Items {
				count(ParseInline(it).Plain())
			}
		case Callout:
			for _, it := range v.Items {
				count(ParseInline(it).Plain())
			}
		}
	}
	return n
}

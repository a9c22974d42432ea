package docmark

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docmark/internal/markup"
	"github.com/alnah/go-docmark/internal/yamlutil"
)

// frontMatter mirrors Metadata with raw, unvalidated fields.
type frontMatter struct {
	Title       string `yaml:"title"`
	Summary     string `yaml:"summary"`
	CreatedAt   string `yaml:"created_at"`
	WordCount   *int   `yaml:"word_count"`
	ContentType string `yaml:"content_type"`
	Status      string `yaml:"status"`
}

// Source is a document body with the metadata found around it.
type Source struct {
	Text     string
	Metadata Metadata
}

// ParseSource reads optional YAML front matter from src. A missing title
// falls back to the first level 1 heading, then to the base name of path.
// A missing word count is computed from the body. CreatedAt stays zero when
// absent; Metadata.Validate reports it.
func ParseSource(src []byte, path string) (Source, error) {
	header, body := yamlutil.SplitFrontMatter(src)

	var fm frontMatter
	if len(bytes.TrimSpace(header)) > 0 {
		if err := yamlutil.Unmarshal(header, &fm); err != nil {
			return Source{}, fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
	}

	text := string(body)
	meta := Metadata{
		Title:       strings.TrimSpace(fm.Title),
		Summary:     strings.TrimSpace(fm.Summary),
		ContentType: fm.ContentType,
		Status:      fm.Status,
	}

	if fm.CreatedAt != "" {
		t, err := ParseCreatedAt(strings.TrimSpace(fm.CreatedAt))
		if err != nil {
			return Source{}, err
		}
		meta.CreatedAt = t
	}

	doc := markup.Parse(text)
	if meta.Title == "" {
		meta.Title = firstTitle(doc)
	}
	if meta.Title == "" && path != "" {
		base := filepath.Base(path)
		meta.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if fm.WordCount != nil {
		meta.WordCount = *fm.WordCount
	} else {
		meta.WordCount = markup.CountWords(doc)
	}

	return Source{Text: text, Metadata: meta}, nil
}

func firstTitle(doc Document) string {
	for _, h := range doc.Headings() {
		if h.Level == 1 {
			return h.Plain()
		}
	}
	return ""
}

package docmark

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		path     string
		wantText string
		wantMeta Metadata
		wantErr  error
	}{
		{
			name: "full front matter",
			src: "---\ntitle: Launch Plan\nsummary: What ships\ncreated_at: \"2025-05-20\"\n" +
				"word_count: 900\ncontent_type: article\nstatus: draft\n---\nBody text",
			path:     "posts/launch.md",
			wantText: "Body text",
			wantMeta: Metadata{
				Title:       "Launch Plan",
				Summary:     "What ships",
				CreatedAt:   time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
				WordCount:   900,
				ContentType: "article",
				Status:      "draft",
			},
		},
		{
			name:     "title from first level one heading",
			src:      "---\ncreated_at: \"2025-05-20T10:30:00Z\"\n---\n## Skip\n# The **Real** Title\nthree more words",
			path:     "x.md",
			wantText: "## Skip\n# The **Real** Title\nthree more words",
			wantMeta: Metadata{
				Title:     "The Real Title",
				CreatedAt: time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC),
				WordCount: 7,
			},
		},
		{
			name:     "title from file name without front matter",
			src:      "just two",
			path:     "drafts/weekly-notes.md",
			wantText: "just two",
			wantMeta: Metadata{Title: "weekly-notes", WordCount: 2},
		},
		{
			name:     "explicit zero word count kept",
			src:      "---\ntitle: T\nword_count: 0\n---\none two three",
			wantText: "one two three",
			wantMeta: Metadata{Title: "T"},
		},
		{
			name:     "empty front matter",
			src:      "---\n---\n# Heading",
			wantText: "# Heading",
			wantMeta: Metadata{Title: "Heading", WordCount: 1},
		},
		{
			name:    "invalid created at",
			src:     "---\ntitle: T\ncreated_at: yesterday\n---\nx",
			wantErr: ErrInvalidCreatedAt,
		},
		{
			name:    "malformed yaml",
			src:     "---\ntitle: [unclosed\n---\nx",
			wantErr: ErrFrontMatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSource([]byte(tt.src), tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseSource() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSource() error = %v", err)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if diff := cmp.Diff(tt.wantMeta, got.Metadata); diff != "" {
				t.Errorf("Metadata mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseCreatedAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2025-05-20", time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), false},
		{"2025-05-20T08:15:00Z", time.Date(2025, 5, 20, 8, 15, 0, 0, time.UTC), false},
		{"2025-05-20T08:15", time.Date(2025, 5, 20, 8, 15, 0, 0, time.UTC), false},
		{"20/05/2025", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCreatedAt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCreatedAt(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidCreatedAt) {
			t.Errorf("ParseCreatedAt(%q) error = %v, want ErrInvalidCreatedAt", tt.input, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseCreatedAt(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

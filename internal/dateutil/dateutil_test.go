package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "year", format: "YYYY", want: "2006"},
		{name: "short year", format: "YY", want: "06"},
		{name: "full month", format: "MMMM", want: "January"},
		{name: "short month", format: "MMM", want: "Jan"},
		{name: "padded month", format: "MM", want: "01"},
		{name: "month", format: "M", want: "1"},
		{name: "padded day", format: "DD", want: "02"},
		{name: "day", format: "D", want: "2"},
		{name: "european", format: "DD/MM/YYYY", want: "02/01/2006"},
		{name: "long", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "preset name", format: "iso", want: "2006-01-02"},
		{name: "preset any case", format: "US", want: "01/02/2006"},
		{name: "bracket literal", format: "[Day] D", want: "Day 2"},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[Day D", wantErr: ErrInvalidDateFormat},
		{
			name:    "too long",
			format:  "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, time.March, 7, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{"", "March 7, 2025"},
		{"iso", "2025-03-07"},
		{"DD/MM/YYYY", "07/03/2025"},
		{"MMM D", "Mar 7"},
	}

	for _, tt := range tests {
		got, err := Format(date, tt.format)
		if err != nil {
			t.Fatalf("Format(%q) unexpected error: %v", tt.format, err)
		}
		if got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2025-03-07", want: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)},
		{input: "2025-03-07T10:30", want: time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)},
		{input: "2025-03-07T10:30:15", want: time.Date(2025, 3, 7, 10, 30, 15, 0, time.UTC)},
		{input: "2025-03-07T10:30:15Z", want: time.Date(2025, 3, 7, 10, 30, 15, 0, time.UTC)},
		{input: " 2025-03-07T10:30:15+02:00 ", want: time.Date(2025, 3, 7, 8, 30, 15, 0, time.UTC)},
		{input: "", wantErr: true},
		{input: "07/03/2025", wantErr: true},
		{input: "2025-13-01", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTimestamp) {
				t.Errorf("ParseTimestamp(%q) error = %v, want ErrInvalidTimestamp", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimestamp(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

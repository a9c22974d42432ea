// Package dateutil formats and parses the dates shown on print documents.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
)

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is the cover and footer date layout.
const DefaultDateFormat = "MMMM D, YYYY"

// layoutTokens maps user-facing tokens to Go layout components,
// longest first so "MMMM" wins over "MM".
var layoutTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named shortcuts accepted wherever a format is.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a token format ("DD/MM/YYYY") or preset name
// into a Go time layout. Text inside brackets is copied literally
// ("[Week of] MMM D"); any other non-token character is kept as is.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}

	var b strings.Builder
	b.Grow(len(format) + 8)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}
		i += writeToken(&b, format[i:])
	}

	return b.String(), nil
}

// writeToken writes the layout for the token at the start of s, or the
// first byte literally, and returns how many bytes were used.
func writeToken(b *strings.Builder, s string) int {
	for _, t := range layoutTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	b.WriteByte(s[0])
	return 1
}

// Format renders t with a token format or preset. An empty format uses
// DefaultDateFormat.
func Format(t time.Time, format string) (string, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// timestampLayouts lists the accepted ISO-8601 shapes, most precise first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseTimestamp parses an ISO-8601 date or date-time. Values without a
// zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 date", ErrInvalidTimestamp, s)
}

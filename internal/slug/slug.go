// Package slug derives URL slugs, file names, and heading anchors from titles.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shurcooL/sanitized_anchor_name"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxFilenameLength bounds the base name returned by Filename (excluding extension).
const MaxFilenameLength = 80

// DefaultFilename is used when a title has no letters or digits.
const DefaultFilename = "document"

// Slug returns a lowercase, hyphen-separated slug for s.
// Accented letters are folded to their base letter ("Crème" -> "creme").
func Slug(s string) string {
	return sanitized_anchor_name.Create(fold(s))
}

// Filename returns a safe file name for title with the given extension.
// The extension may be given with or without the leading dot; empty means none.
func Filename(title, ext string) string {
	base := Slug(title)
	if base == "" {
		base = DefaultFilename
	}
	if r := []rune(base); len(r) > MaxFilenameLength {
		base = strings.TrimRight(string(r[:MaxFilenameLength]), "-")
	}
	if ext == "" {
		return base
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + ext
}

// Anchors hands out unique anchors for a single document.
// The zero value is ready to use. Not safe for concurrent use.
type Anchors struct {
	used map[string]bool
	next map[string]int // next suffix to try per base
}

// Next returns the anchor for text, suffixing "-1", "-2", ... on repeats.
// Suffixes skip anchors already handed out, so every result is unique
// even when a later heading slugs to an earlier suffixed anchor.
func (a *Anchors) Next(text string) string {
	if a.used == nil {
		a.used = make(map[string]bool)
		a.next = make(map[string]int)
	}
	base := Slug(text)
	if base == "" {
		base = "section"
	}

	anchor := base
	if a.used[base] {
		n := max(a.next[base], 1)
		for a.used[base+"-"+strconv.Itoa(n)] {
			n++
		}
		anchor = base + "-" + strconv.Itoa(n)
		a.next[base] = n + 1
	}
	a.used[anchor] = true
	return anchor
}

// fold strips combining marks after canonical decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

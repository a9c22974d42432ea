package yamlutil

import (
	"bytes"
)

var frontMatterDelim = []byte("---")

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// body. The opening delimiter must be the first line. When there is no
// front matter, or it is never closed, header is nil and body is src.
func SplitFrontMatter(src []byte) (header, body []byte) {
	src = bytes.TrimPrefix(src, []byte("\ufeff"))

	first, rest, ok := cutLine(src)
	if !ok || !bytes.Equal(bytes.TrimSpace(first), frontMatterDelim) {
		return nil, src
	}

	start := rest
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), frontMatterDelim) {
			header = start[:len(start)-len(rest)]
			return header, next
		}
		rest = next
	}
	return nil, src
}

// cutLine splits off the first line, dropping its line terminator.
// It reports false when s has no newline.
func cutLine(s []byte) (line, rest []byte, ok bool) {
	line, rest, ok = bytes.Cut(s, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, ok
}

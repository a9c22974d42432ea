// Package pathrewrite anchors relative image and link targets of a laid-out
// print page to the directory of its source file, so that the page still
// resolves them after it has been copied to a temporary file for PDF output.
package pathrewrite

import (
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-docmark/internal/fileutil"
)

// targets lists the attribute rewritten per element.
var targets = map[string]string{
	"img": "src",
	"a":   "href",
}

// Rewrite returns page with every relative img src and a href turned into
// a file:// URL under baseDir. Targets that are URLs, absolute paths or
// fragments are left alone, as are targets escaping baseDir. An empty
// baseDir returns page unchanged.
func Rewrite(page, baseDir string) (string, error) {
	if baseDir == "" {
		return page, nil
	}
	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	for n := range walk(doc) {
		key, ok := targets[n.Data]
		if !ok {
			continue
		}
		for i, a := range n.Attr {
			if a.Key != key || !IsRelative(a.Val) {
				continue
			}
			if u, ok := anchor(root, a.Val); ok {
				n.Attr[i].Val = u
			}
		}
	}

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return sb.String(), nil
}

// IsRelative reports whether target is a path relative to the document.
func IsRelative(target string) bool {
	switch {
	case target == "",
		strings.HasPrefix(target, "#"),
		strings.HasPrefix(target, "//"),
		strings.HasPrefix(target, "mailto:"),
		fileutil.IsURL(target),
		filepath.IsAbs(target),
		strings.HasPrefix(target, "/"):
		return false
	}
	return true
}

// anchor joins target to root and returns its file URL, keeping any
// query or fragment. It refuses targets resolving outside root.
func anchor(root, target string) (string, bool) {
	path, suffix := target, ""
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		path, suffix = target[:i], target[i:]
	}
	abs := filepath.Join(root, filepath.FromSlash(path))
	if rel, err := filepath.Rel(root, abs); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	u, err := fileutil.ToFileURL(abs)
	if err != nil {
		return "", false
	}
	return u + suffix, true
}

// walk yields every element node under n in document order.
func walk(n *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var visit func(*html.Node) bool
		visit = func(c *html.Node) bool {
			if c.Type == html.ElementNode && !yield(c) {
				return false
			}
			for k := c.FirstChild; k != nil; k = k.NextSibling {
				if !visit(k) {
					return false
				}
			}
			return true
		}
		visit(n)
	}
}

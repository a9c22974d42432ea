// Package hints appends actionable suggestions to CLI error messages.
// Every hint has the form "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docmark/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
// It is a variable so tests can replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVars are set by common CI providers.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect suggests the rod environment variables that usually
// fix a failed Chrome launch.
func ForBrowserConnect() string {
	var out []string

	inCI := false
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			inCI = true
			break
		}
	}

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		out = append(out, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		out = append(out, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	if len(out) == 0 {
		return ""
	}
	return format(strings.Join(out, "; "))
}

// ForTimeout suggests raising the render timeout.
func ForTimeout() string {
	return format("for long documents, raise --timeout or DOCMARK_TIMEOUT")
}

// ForHTMLOnly suggests skipping the browser entirely.
func ForHTMLOnly() string {
	return format("use --html-only to skip PDF output")
}

// ForConfigNotFound suggests --config, or creating the user config file
// among searched.
func ForConfigNotFound(searched []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(toSlash(p), "go-docmark/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory suggests checking the output location.
func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

// ForFrontMatter describes the expected front matter shape.
func ForFrontMatter() string {
	return format("front matter is YAML between two '---' lines; created_at takes 2006-01-02 or RFC 3339")
}

// ForDateFormat lists the accepted date format tokens.
func ForDateFormat() string {
	return format("tokens: YYYY YY MMMM MMM MM M DD D; presets: iso, european, us, long")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

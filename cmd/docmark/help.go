package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmark <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown to a CMS body, print HTML and PDF")
	fmt.Fprintln(w, "  inspect    Show the parsed block sequence of a file")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docmark help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmark render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files. Each document writes <slug>.html (CMS body)")
	fmt.Fprintln(w, "and <slug>.pdf, where <slug> comes from the document title.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to each file)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --callout <mode>      Callout marker match: contains, prefix")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formats:")
	fmt.Fprintln(w, "      --html-only           Skip PDF, write <slug>.print.html instead")
	fmt.Fprintln(w, "      --print-html          Also write <slug>.print.html")
	fmt.Fprintln(w, "      --yaml                Also write the print model as <slug>.print.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print:")
	fmt.Fprintln(w, "      --logo <url>          Logo on cover and page header")
	fmt.Fprintln(w, "      --toc-title <s>       Table of contents heading")
	fmt.Fprintln(w, "      --date-format <s>     Cover date format")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --break-before <n>    New section before headings up to level n (0-3)")
	fmt.Fprintln(w, "      --no-numbering        Drop heading numbers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tracking:")
	fmt.Fprintln(w, "      --tracking            Add utm parameters to links")
	fmt.Fprintln(w, "      --utm-source <s>      utm_source (default: docmark)")
	fmt.Fprintln(w, "      --utm-medium <s>      utm_medium (default: content)")
	fmt.Fprintln(w, "      --utm-campaign <s>    utm_campaign (default: title slug)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --style <name>        CSS style name")
	fmt.Fprintln(w, "      --template <name>     Print template name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCMARK_CONFIG, DOCMARK_TIMEOUT, DOCMARK_WORKERS, DOCMARK_INPUT_DIR,")
	fmt.Fprintln(w, "  DOCMARK_OUTPUT_DIR, DOCMARK_LOGO, DOCMARK_STYLE, DOCMARK_PAGE_SIZE, DOCMARK_LANG")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX=1")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmark inspect <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show metadata and the parsed block sequence of a markdown file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --callout <mode>      Callout marker match: contains, prefix")
	fmt.Fprintln(w, "      --width <n>           Wrap width (0 = terminal width)")
	fmt.Fprintln(w, "      --no-color            Disable colors")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docmark version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docmark help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

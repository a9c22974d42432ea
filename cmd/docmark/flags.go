package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// printFlags holds print model flags.
type printFlags struct {
	logo        string
	tocTitle    string
	dateFormat  string
	breakBefore int
	noNumbering bool
}

// trackingFlags holds link tracking flags.
type trackingFlags struct {
	enabled  bool
	source   string
	medium   string
	campaign string
}

// assetFlags holds print HTML asset flags.
type assetFlags struct {
	style     string
	template  string
	assetPath string
}

// outputFlags holds extra output formats.
type outputFlags struct {
	printHTML bool // Print layout HTML alongside the PDF
	yaml      bool // Print model dump
	htmlOnly  bool // Skip the PDF
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	callout    string
	page       pageFlags
	print      printFlags
	tracking   trackingFlags
	assets     assetFlags
	outputMode outputFlags
}

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	config  string
	callout string
	width   int
	noColor bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addPrintFlags adds print model flags to a FlagSet.
func addPrintFlags(fs *flag.FlagSet, f *printFlags) {
	fs.StringVar(&f.logo, "logo", "", "logo URL for cover and header")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
	fs.StringVar(&f.dateFormat, "date-format", "", "cover date format (tokens or preset)")
	fs.IntVar(&f.breakBefore, "break-before", 0, "new section before headings up to level n (0-3)")
	fs.BoolVar(&f.noNumbering, "no-numbering", false, "drop heading numbers")
}

// addTrackingFlags adds link tracking flags to a FlagSet.
func addTrackingFlags(fs *flag.FlagSet, f *trackingFlags) {
	fs.BoolVar(&f.enabled, "tracking", false, "add utm parameters to links")
	fs.StringVar(&f.source, "utm-source", "", "utm_source value")
	fs.StringVar(&f.medium, "utm-medium", "", "utm_medium value")
	fs.StringVar(&f.campaign, "utm-campaign", "", "utm_campaign value (\"\" = title slug)")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name")
	fs.StringVar(&f.template, "template", "", "print template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.printHTML, "print-html", false, "also write the print layout HTML")
	fs.BoolVar(&f.yaml, "yaml", false, "also write the print model as YAML")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &renderFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.callout, "callout", "", "callout marker match: contains, prefix")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addPrintFlags(fs, &f.print)
	addTrackingFlags(fs, &f.tracking)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printRenderUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInspectFlags parses inspect command flags and returns positional args.
func parseInspectFlags(args []string, usage io.Writer) (*inspectFlags, []string, error) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &inspectFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.callout, "callout", "", "callout marker match: contains, prefix")
	fs.IntVar(&f.width, "width", 0, "wrap width (0 = terminal width)")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colors")

	fs.Usage = func() { printInspectUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

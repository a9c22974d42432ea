// Package config loads and validates YAML configuration for the docmark
// CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docmark/internal/dateutil"
	"github.com/alnah/go-docmark/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory under the user config dir searched for configs.
const AppDir = "go-docmark"

// Field length limits for multi-tenant safety.
const (
	MaxURLLength        = 2048 // Browser limit
	MaxLabelLength      = 50   // Callout label
	MaxTitleLength      = 100  // TOC title
	MaxIndicatorLength  = 50   // "Page {page} of {total}"
	MaxTrackingLength   = 100  // utm_* values
	MaxStyleLength      = 500  // Inline callout CSS
	MaxNameLength       = 50   // Style, template, highlight style names
	MaxLangLength       = 35   // BCP 47 tag
	MaxPageSizeLength   = 10   // "letter", "a4", "legal"
	MaxOrientationLen   = 10   // "portrait", "landscape"
	MaxBaseFontSize     = 72.0 // Points
	MaxBreakBeforeLevel = 3
)

// Callout detection modes.
const (
	CalloutContains = "contains" // Marker anywhere in the line
	CalloutPrefix   = "prefix"   // Marker at the start of the line
)

// Config holds all configuration for document rendering.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Print     PrintConfig     `yaml:"print"`
	Hypertext HypertextConfig `yaml:"hypertext"`
	Layout    LayoutConfig    `yaml:"layout"`
	PDF       PDFConfig       `yaml:"pdf"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Callout    string `yaml:"callout"`    // "contains" (default) or "prefix"
}

// OutputConfig defines output destination and formats.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = same as source
	PrintHTML  bool   `yaml:"printHTML"`  // Also write the print layout HTML
	YAML       bool   `yaml:"yaml"`       // Also write the print model as YAML
}

// TrackingConfig defines link tracking parameters.
type TrackingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Source   string `yaml:"source"`   // Default "docmark"
	Medium   string `yaml:"medium"`   // Default "content"
	Campaign string `yaml:"campaign"` // Empty = slug of the document title
}

// PrintConfig defines the print model.
type PrintConfig struct {
	Logo             string  `yaml:"logo"`             // Logo URL on cover and header
	TOCTitle         string  `yaml:"tocTitle"`         // Default "Contents"
	CalloutLabel     string  `yaml:"calloutLabel"`     // Default "TL;DR"
	DateFormat       string  `yaml:"dateFormat"`       // Tokens or preset, default "MMMM D, YYYY"
	PageIndicator    string  `yaml:"pageIndicator"`    // Default "Page {page} of {total}"
	BreakBefore      int     `yaml:"breakBefore"`      // 0-3
	BaseFontSize     float64 `yaml:"baseFontSize"`     // Points, 0 = default
	DisableNumbering bool    `yaml:"disableNumbering"` // Drop "1.2." heading numbers
}

// HypertextConfig defines the CMS body.
type HypertextConfig struct {
	CalloutLabel   string `yaml:"calloutLabel"`
	CalloutStyle   string `yaml:"calloutStyle"`
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style name
}

// LayoutConfig defines print HTML assets.
type LayoutConfig struct {
	AssetPath string `yaml:"assetPath"` // Empty = embedded assets
	Style     string `yaml:"style"`
	Template  string `yaml:"template"`
	Lang      string `yaml:"lang"`
}

// PDFConfig defines PDF page settings.
type PDFConfig struct {
	PageSize    string  `yaml:"pageSize"`    // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // Inches (default: 0.5)
	Timeout     string  `yaml:"timeout"`     // Go duration, e.g. "90s"
}

// TimeoutDuration parses Timeout. Zero means unset.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout %q (must be a positive duration like \"90s\")", ErrInvalidValue, p.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and ranges. Called by LoadConfig, and
// available for callers that build a Config by hand.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"tracking.source", c.Tracking.Source, MaxTrackingLength},
		{"tracking.medium", c.Tracking.Medium, MaxTrackingLength},
		{"tracking.campaign", c.Tracking.Campaign, MaxTrackingLength},
		{"print.logo", c.Print.Logo, MaxURLLength},
		{"print.tocTitle", c.Print.TOCTitle, MaxTitleLength},
		{"print.calloutLabel", c.Print.CalloutLabel, MaxLabelLength},
		{"print.pageIndicator", c.Print.PageIndicator, MaxIndicatorLength},
		{"hypertext.calloutLabel", c.Hypertext.CalloutLabel, MaxLabelLength},
		{"hypertext.calloutStyle", c.Hypertext.CalloutStyle, MaxStyleLength},
		{"hypertext.highlightStyle", c.Hypertext.HighlightStyle, MaxNameLength},
		{"layout.style", c.Layout.Style, MaxNameLength},
		{"layout.template", c.Layout.Template, MaxNameLength},
		{"layout.lang", c.Layout.Lang, MaxLangLength},
		{"pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength},
		{"pdf.orientation", c.PDF.Orientation, MaxOrientationLen},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Input.Callout) {
	case "", CalloutContains, CalloutPrefix:
	default:
		return fmt.Errorf("%w: input.callout %q (must be %s or %s)", ErrInvalidValue, c.Input.Callout, CalloutContains, CalloutPrefix)
	}

	if c.Print.DateFormat != "" {
		if _, err := dateutil.ParseDateFormat(c.Print.DateFormat); err != nil {
			return fmt.Errorf("print.dateFormat: %w", err)
		}
	}
	if c.Print.BreakBefore < 0 || c.Print.BreakBefore > MaxBreakBeforeLevel {
		return fmt.Errorf("%w: print.breakBefore must be between 0 and %d, got %d", ErrInvalidValue, MaxBreakBeforeLevel, c.Print.BreakBefore)
	}
	if c.Print.BaseFontSize < 0 || c.Print.BaseFontSize > MaxBaseFontSize {
		return fmt.Errorf("%w: print.baseFontSize must be between 0 and %.0f, got %.2f", ErrInvalidValue, MaxBaseFontSize, c.Print.BaseFontSize)
	}

	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}
	if c.PDF.Margin < 0 {
		return fmt.Errorf("%w: pdf.margin cannot be negative, got %.2f", ErrInvalidValue, c.PDF.Margin)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: embedded assets, tracking
// off, library defaults everywhere else.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{Callout: CalloutContains},
		Tracking: TrackingConfig{Enabled: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it is
// searched as name.yaml or name.yml in the current directory, then in the
// user config directory. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

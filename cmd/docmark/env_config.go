package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-docmark/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "DOCMARK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // DOCMARK_CONFIG: config file name or path
	Timeout    time.Duration // DOCMARK_TIMEOUT: PDF generation timeout
	Workers    int           // DOCMARK_WORKERS: parallel workers

	InputDir  string // DOCMARK_INPUT_DIR: default input directory
	OutputDir string // DOCMARK_OUTPUT_DIR: default output directory

	Logo     string // DOCMARK_LOGO: cover and header logo URL
	Style    string // DOCMARK_STYLE: print CSS style name
	PageSize string // DOCMARK_PAGE_SIZE: a4, letter, legal
	Lang     string // DOCMARK_LANG: print HTML language
}

// knownEnvVars lists valid DOCMARK_* environment variables.
var knownEnvVars = map[string]bool{
	"DOCMARK_CONFIG":     true,
	"DOCMARK_TIMEOUT":    true,
	"DOCMARK_WORKERS":    true,
	"DOCMARK_INPUT_DIR":  true,
	"DOCMARK_OUTPUT_DIR": true,
	"DOCMARK_LOGO":       true,
	"DOCMARK_STYLE":      true,
	"DOCMARK_PAGE_SIZE":  true,
	"DOCMARK_LANG":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("DOCMARK_CONFIG"),
		InputDir:   os.Getenv("DOCMARK_INPUT_DIR"),
		OutputDir:  os.Getenv("DOCMARK_OUTPUT_DIR"),
		Logo:       os.Getenv("DOCMARK_LOGO"),
		Style:      os.Getenv("DOCMARK_STYLE"),
		PageSize:   os.Getenv("DOCMARK_PAGE_SIZE"),
		Lang:       os.Getenv("DOCMARK_LANG"),
	}

	if timeout := os.Getenv("DOCMARK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("DOCMARK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized DOCMARK_* variables, which
// are usually typos.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig fills config values that are still empty.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Logo != "" && cfg.Print.Logo == "" {
		cfg.Print.Logo = env.Logo
	}
	if env.Style != "" && cfg.Layout.Style == "" {
		cfg.Layout.Style = env.Style
	}
	if env.PageSize != "" && cfg.PDF.PageSize == "" {
		cfg.PDF.PageSize = env.PageSize
	}
	if env.Lang != "" && cfg.Layout.Lang == "" {
		cfg.Layout.Lang = env.Lang
	}
}

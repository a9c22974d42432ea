package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/config"
	"github.com/alnah/go-docmark/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrNoFiles        = errors.New("no markdown files found")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrUsage          = errors.New("invalid usage")
)

// runRenderCmd parses render flags, runs the batch and maps the outcome to
// an exit code.
func runRenderCmd(args []string, env *Environment) int {
	flags, positional, err := parseRenderFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'docmark help render' for usage.")
		return ExitUsage
	}

	setupMaxprocs(flags.common.verbose, env.Stderr)
	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runRender(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %s\n", errorMessage(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runRender orchestrates configuration, discovery and the batch.
func runRender(ctx context.Context, positional []string, flags *renderFlags, env *Environment) error {
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	envCfg := loadEnvConfig()

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg, cfg)
	if err != nil {
		return err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	size := docmark.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", size)
	}
	pool := env.NewPool(size, pipelineOptions(cfg, timeout)...)
	defer func() {
		if cerr := pool.Close(); cerr != nil && flags.common.verbose {
			fmt.Fprintf(env.Stderr, "warning: closing browsers: %v\n", cerr)
		}
	}()

	params := &renderParams{
		page:      page,
		htmlOnly:  flags.outputMode.htmlOnly,
		printHTML: flags.outputMode.printHTML || cfg.Output.PrintHTML,
		yaml:      flags.outputMode.yaml || cfg.Output.YAML,
		now:       env.Now,
		names:     &outputNames{},
	}
	results := renderBatch(ctx, pool, files, params)

	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed > 0 {
		if len(results) == 1 {
			return summary.FirstErr
		}
		return fmt.Errorf("%d of %d render(s) failed: %w", summary.Failed, len(results), summary.FirstErr)
	}
	return nil
}

// loadConfig loads the named config, or DOCMARK_CONFIG, or falls back to
// the environment's default config.
func loadConfig(name string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		if env.Config == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *env.Config
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.callout != "" {
		cfg.Input.Callout = flags.callout
	}

	// Print
	if flags.print.logo != "" {
		cfg.Print.Logo = flags.print.logo
	}
	if flags.print.tocTitle != "" {
		cfg.Print.TOCTitle = flags.print.tocTitle
	}
	if flags.print.dateFormat != "" {
		cfg.Print.DateFormat = flags.print.dateFormat
	}
	if flags.print.breakBefore != 0 {
		cfg.Print.BreakBefore = flags.print.breakBefore
	}
	if flags.print.noNumbering {
		cfg.Print.DisableNumbering = true
	}

	// Tracking: any utm flag turns tracking on
	t := flags.tracking
	if t.enabled || t.source != "" || t.medium != "" || t.campaign != "" {
		cfg.Tracking.Enabled = true
	}
	if t.source != "" {
		cfg.Tracking.Source = t.source
	}
	if t.medium != "" {
		cfg.Tracking.Medium = t.medium
	}
	if t.campaign != "" {
		cfg.Tracking.Campaign = t.campaign
	}

	// Assets
	if flags.assets.style != "" {
		cfg.Layout.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Layout.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Layout.AssetPath = flags.assets.assetPath
	}

	// Page
	if flags.page.size != "" {
		cfg.PDF.PageSize = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.PDF.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.PDF.Margin = flags.page.margin
	}
}

// resolveTimeout applies flag > env > config. Zero means the library default.
func resolveTimeout(flagValue string, envCfg *envConfig, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be a positive duration like 30s or 2m)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envCfg.Timeout > 0 {
		return envCfg.Timeout, nil
	}
	return cfg.PDF.TimeoutDuration()
}

// resolveInputPath returns the positional input, or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the flag value, or the configured default.
// Empty means next to each source file.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// buildPageSettings fills unset page fields with defaults and validates.
func buildPageSettings(cfg *config.Config) (*docmark.PageSettings, error) {
	page := docmark.DefaultPageSettings()
	if cfg.PDF.PageSize != "" {
		page.Size = strings.ToLower(cfg.PDF.PageSize)
	}
	if cfg.PDF.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.PDF.Orientation)
	}
	if cfg.PDF.Margin != 0 {
		page.Margin = cfg.PDF.Margin
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// pipelineOptions translates config into pipeline options.
func pipelineOptions(cfg *config.Config, timeout time.Duration) []docmark.Option {
	opts := []docmark.Option{
		docmark.WithPrintSettings(docmark.PrintSettings{
			LogoURL:       cfg.Print.Logo,
			TOCTitle:      cfg.Print.TOCTitle,
			CalloutLabel:  cfg.Print.CalloutLabel,
			DateFormat:    cfg.Print.DateFormat,
			PageIndicator: cfg.Print.PageIndicator,
			BaseFontSize:  cfg.Print.BaseFontSize,
			BreakBefore:   cfg.Print.BreakBefore,
			NoNumbering:   cfg.Print.DisableNumbering,
		}),
		docmark.WithHypertextSettings(docmark.HypertextSettings{
			CalloutLabel:   cfg.Hypertext.CalloutLabel,
			CalloutStyle:   cfg.Hypertext.CalloutStyle,
			HighlightStyle: cfg.Hypertext.HighlightStyle,
		}),
		docmark.WithLayoutSettings(docmark.LayoutSettings{
			AssetPath: cfg.Layout.AssetPath,
			Style:     cfg.Layout.Style,
			Template:  cfg.Layout.Template,
			Lang:      cfg.Layout.Lang,
		}),
	}
	if timeout > 0 {
		opts = append(opts, docmark.WithTimeout(timeout))
	}
	if cfg.Tracking.Enabled {
		opts = append(opts, docmark.WithTracking(docmark.Tracking{
			Source:   cfg.Tracking.Source,
			Medium:   cfg.Tracking.Medium,
			Campaign: cfg.Tracking.Campaign,
		}))
	}
	if strings.EqualFold(cfg.Input.Callout, config.CalloutPrefix) {
		opts = append(opts, docmark.WithCalloutMatcher(docmark.HasMarkerPrefix))
	}
	return opts
}

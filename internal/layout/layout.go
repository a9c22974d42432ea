package layout

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-docmark/internal/assets"
	"github.com/alnah/go-docmark/internal/printdoc"
)

// DefaultLang is the document language attribute.
const DefaultLang = "en"

var ErrTemplate = errors.New("layout template failed")

// View is the data handed to the page template.
type View struct {
	Lang string
	Doc  *printdoc.Document
	CSS  template.CSS
}

// Engine renders print documents. It is immutable after New and safe for
// concurrent use.
type Engine struct {
	tmpl *template.Template
	css  string
	lang string
}

type engineConfig struct {
	loader   assets.AssetLoader
	style    string
	template string
	extraCSS string
	lang     string
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithAssetLoader replaces the embedded assets, e.g. with an
// assets.AssetResolver over a custom directory.
func WithAssetLoader(l assets.AssetLoader) Option {
	return func(c *engineConfig) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithStyle selects the stylesheet by name.
func WithStyle(name string) Option {
	return func(c *engineConfig) {
		if name != "" {
			c.style = name
		}
	}
}

// WithTemplate selects the page template by name.
func WithTemplate(name string) Option {
	return func(c *engineConfig) {
		if name != "" {
			c.template = name
		}
	}
}

// WithCSS appends CSS after the stylesheet.
func WithCSS(css string) Option {
	return func(c *engineConfig) { c.extraCSS = css }
}

// WithLang sets the html lang attribute.
func WithLang(lang string) Option {
	return func(c *engineConfig) {
		if lang != "" {
			c.lang = lang
		}
	}
}

// New loads and parses the assets.
func New(opts ...Option) (*Engine, error) {
	cfg := engineConfig{
		loader:   assets.NewEmbeddedLoader(),
		style:    assets.DefaultStyleName,
		template: assets.DefaultTemplateName,
		lang:     DefaultLang,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	css, err := cfg.loader.LoadStyle(cfg.style)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", cfg.style, err)
	}
	if cfg.extraCSS != "" {
		css += "\n" + cfg.extraCSS
	}

	src, err := cfg.loader.LoadTemplate(cfg.template)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", cfg.template, err)
	}
	tmpl, err := template.New(cfg.template).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %v", ErrTemplate, cfg.template, err)
	}

	return &Engine{tmpl: tmpl, css: css, lang: cfg.lang}, nil
}

// Render executes the page template for doc.
func (e *Engine) Render(doc *printdoc.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: nil document", ErrTemplate)
	}
	var sb strings.Builder
	view := View{
		Lang: e.lang,
		Doc:  doc,
		CSS:  template.CSS(e.css), // #nosec G203 -- trusted asset content
	}
	if err := e.tmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return sb.String(), nil
}

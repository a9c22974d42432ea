package assets

// Built-in asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "print"
)

// AssetLoader loads CSS styles and HTML templates by name, without
// extension.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in style.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in template.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

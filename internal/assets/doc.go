// Package assets provides the CSS and HTML layout template used to print
// documents.
//
// Assets are looked up by name through an AssetLoader:
//
//	AssetLoader (interface)
//	    ├── EmbeddedLoader    - built-in assets compiled into the binary
//	    ├── FilesystemLoader  - assets from a directory on disk
//	    └── AssetResolver     - custom directory first, embedded fallback
//
// A custom directory mirrors the embedded layout:
//
//	{basePath}/
//	├── styles/{name}.css
//	└── templates/{name}.html
//
// Names are validated so they cannot escape the base directory, and the
// filesystem loader resolves symlinks before checking containment.
package assets

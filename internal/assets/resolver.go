package assets

import "errors"

// AssetResolver tries a custom directory first and falls back to the
// embedded assets when the custom one lacks the asset.
type AssetResolver struct {
	custom   AssetLoader // nil when no directory is configured
	embedded AssetLoader
}

// NewAssetResolver uses only embedded assets when customBasePath is empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.load(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.load(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// load only falls back on not-found; validation and I/O errors surface.
func (r *AssetResolver) load(fn func(AssetLoader) (string, error)) (string, error) {
	if r.custom == nil {
		return fn(r.embedded)
	}
	content, err := fn(r.custom)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}
	return fn(r.embedded)
}

var _ AssetLoader = (*AssetResolver)(nil)

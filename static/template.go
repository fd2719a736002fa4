package static

import (
	"fmt"

	"github.com/aymerick/raymond"
)

// Template ids known to the renderer.
const (
	DirectoryTemplate = "directory"
	NotFoundTemplate  = "not_found"
)

const mimeFallbackIcon = "icons/file.svg"

// Renderer maps a template id and a context to rendered bytes. It
// wraps the Handlebars engine with the listing helpers; construct it
// once before serving.
type Renderer struct {
	templates map[string]*raymond.Template
}

func NewRenderer(assets *AssetStore) (*Renderer, error) {
	renderer := &Renderer{templates: make(map[string]*raymond.Template)}

	for _, id := range []string{DirectoryTemplate, NotFoundTemplate} {
		source, found := assets.Get("templates/" + id + ".hbs")
		if !found {
			return nil, fmt.Errorf("static: missing template %q", id)
		}

		tpl, err := raymond.Parse(string(source))
		if err != nil {
			return nil, fmt.Errorf("static: parse template %q: %w", id, err)
		}

		registerHelpers(tpl, assets)
		renderer.templates[id] = tpl
	}

	return renderer, nil
}

func registerHelpers(tpl *raymond.Template, assets *AssetStore) {
	// internal_path emits the reserved asset route prefix.
	tpl.RegisterHelper("internal_path", func() raymond.SafeString {
		return raymond.SafeString(InternalRoot)
	})

	// asset inlines an embedded asset verbatim.
	tpl.RegisterHelper("asset", func(relative string) raymond.SafeString {
		data, found := assets.Get(relative)
		if !found {
			return ""
		}
		return raymond.SafeString(data)
	})

	// icon_by_mime inlines the icon matching a mime classification,
	// with the generic file icon as fallback.
	tpl.RegisterHelper("icon_by_mime", func(mime string) raymond.SafeString {
		if data, found := assets.Get("icons/by_mime/" + mime + ".svg"); found {
			return raymond.SafeString(data)
		}

		data, _ := assets.Get(mimeFallbackIcon)
		return raymond.SafeString(data)
	})
}

func (r *Renderer) Render(id string, ctx any) ([]byte, error) {
	tpl, found := r.templates[id]
	if !found {
		return nil, fmt.Errorf("static: unknown template %q", id)
	}

	out, err := tpl.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("static: render %q: %w", id, err)
	}

	return []byte(out), nil
}

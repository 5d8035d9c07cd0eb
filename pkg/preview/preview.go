// Package preview renders a standalone HTML page that boots
// vue-form-generator with a translated definition.
package preview

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-webformvue/pkg/vfg"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

const templateName = "preview.tpl"

// Assets lists the client bundles the page loads.
type Assets struct {
	VueURL        string
	GeneratorURL  string
	StylesheetURL string
}

// DefaultAssets points at the public CDN builds.
func DefaultAssets() Assets {
	return Assets{
		VueURL:        "https://unpkg.com/vue@2.7.16/dist/vue.min.js",
		GeneratorURL:  "https://unpkg.com/vue-form-generator@2.3.4/dist/vfg.js",
		StylesheetURL: "https://unpkg.com/vue-form-generator@2.3.4/dist/vfg.css",
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithThemeSelector resolves page tokens through selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Renderer) {
		r.selector = selector
		r.themeName = name
		r.variant = variant
	}
}

// WithAssets overrides the client bundle URLs.
func WithAssets(assets Assets) Option {
	return func(r *Renderer) {
		r.assets = assets
	}
}

// WithSubmitURL sets the endpoint the page posts submissions to.
func WithSubmitURL(url string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(url) != "" {
			r.submitURL = url
		}
	}
}

// WithTemplates replaces the embedded template directory. It must contain
// preview.tpl.
func WithTemplates(fsys fs.FS) Option {
	return func(r *Renderer) {
		r.templates = fsys
	}
}

// Renderer renders preview pages. It is safe for concurrent use.
type Renderer struct {
	templates fs.FS
	tmpl      *pongo2.Template
	selector  theme.ThemeSelector
	themeName string
	variant   string
	assets    Assets
	submitURL string
}

// New parses the preview template.
func New(options ...Option) (*Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: templates: %w", err)
	}
	r := &Renderer{
		templates: sub,
		selector:  DefaultThemes(),
		assets:    DefaultAssets(),
		submitURL: "/submit",
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		return nil, errors.New("preview: templates are required")
	}

	set := pongo2.NewSet("webformvue-preview", pongo2.NewFSLoader(r.templates))
	tmpl, err := set.FromFile(templateName)
	if err != nil {
		return nil, fmt.Errorf("preview: parse %s: %w", templateName, err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes the page for def using the translated payload.
func (r *Renderer) Render(w io.Writer, def webform.Definition, resp vfg.Response) error {
	if r == nil || r.tmpl == nil {
		return errors.New("preview: renderer is nil")
	}

	var selection *theme.Selection
	if r.selector != nil {
		sel, err := r.selector.Select(r.themeName, r.variant)
		if err != nil {
			return fmt.Errorf("preview: select theme: %w", err)
		}
		selection = sel
	}

	// json.Marshal escapes <, >, and & so the payload cannot close the
	// surrounding script element.
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("preview: encode payload: %w", err)
	}
	submitURL, _ := json.Marshal(r.submitURL)
	webformID, _ := json.Marshal(def.ID)

	title := def.Title
	if title == "" {
		title = def.ID
	}

	ctx := pongo2.Context{
		"title":       title,
		"description": def.Description,
		"payload":     string(payload),
		"submit_url":  string(submitURL),
		"webform_id":  string(webformID),
		"assets":      r.assets,
		"tokens":      tokens(selection),
		"theme":       "",
		"variant":     "",
	}
	if selection != nil {
		ctx["theme"] = selection.Theme
		ctx["variant"] = selection.Variant
	}

	if err := r.tmpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("preview: execute template: %w", err)
	}
	return nil
}

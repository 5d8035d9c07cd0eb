package preview

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Themes is an in-memory theme.ThemeSelector. Variant tokens override the
// manifest tokens.
type Themes struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes registers manifests; the first one becomes the default.
func NewThemes(manifests ...*theme.Manifest) *Themes {
	t := &Themes{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		t.Register(manifest)
	}
	return t
}

// DefaultThemes returns the built-in light and dark palette.
func DefaultThemes() *Themes {
	return NewThemes(&theme.Manifest{
		Name:    "default",
		Version: "1.0.0",
		Tokens: map[string]string{
			"font-family":      "system-ui, sans-serif",
			"primary":          "#2c6ecb",
			"primary-contrast": "#ffffff",
			"text":             "#1f2328",
			"background":       "#ffffff",
			"border":           "#d0d7de",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"text":       "#e6edf3",
					"background": "#0d1117",
					"border":     "#30363d",
				},
			},
		},
	})
}

// Register adds or replaces a manifest.
func (t *Themes) Register(manifest *theme.Manifest) {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.defaultTheme == "" {
		t.defaultTheme = manifest.Name
	}
	t.manifests[manifest.Name] = manifest
}

// Select resolves name and variant, falling back to the default theme when
// name is empty or unknown.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	manifest, ok := t.manifests[strings.TrimSpace(name)]
	if !ok {
		manifest, ok = t.manifests[t.defaultTheme]
	}
	if !ok {
		return nil, fmt.Errorf("preview: no theme registered")
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = t.defaultVariant
	}
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

type token struct {
	Name  string
	Value string
}

// tokens flattens a selection into sorted CSS custom properties.
func tokens(selection *theme.Selection) []token {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	merged := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		merged[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			merged[key] = value
		}
	}

	out := make([]token, 0, len(merged))
	for key, value := range merged {
		out = append(out, token{Name: strings.TrimPrefix(key, "--"), Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

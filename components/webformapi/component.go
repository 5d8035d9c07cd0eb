package webformapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Component bundles a Service with its HTTP configuration.
type Component struct {
	svc  Service
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(svc Service, fns ...OptionFn) *Component {
	return &Component{svc: svc, opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a router serving the component at the root path.
func (c *Component) Handler() (http.Handler, error) {
	r := chi.NewRouter()
	if _, err := c.RegisterRoutes(r, "/"); err != nil {
		return nil, err
	}
	return r, nil
}

// RegisterRoutes registers the component handlers under basePath on r.
func (c *Component) RegisterRoutes(r chi.Router, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutesWithOptions(r, basePath, nil, DefaultOptions())
	}
	return RegisterRoutesWithOptions(r, basePath, c.svc, c.opts)
}

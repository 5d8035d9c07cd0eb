package webformapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MountPath returns the full pattern for routePath under basePath.
func MountPath(basePath, routePath string) string {
	return mountPath(basePath, routePath)
}

// RegisterRoutes registers the adapter handlers under basePath on r and
// returns the registered patterns.
func RegisterRoutes(r chi.Router, basePath string, svc Service, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(r, basePath, svc, opts)
}

// RegisterRoutesWithOptions registers the handlers using a pre-built Options
// value. Callers are expected to pass an Options value produced by NewOptions
// so defaults apply.
func RegisterRoutesWithOptions(r chi.Router, basePath string, svc Service, opts Options) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("webformapi: missing router")
	}
	if svc == nil {
		return nil, fmt.Errorf("webformapi: missing service")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	h := handlers{svc: svc, opts: opts}

	elements := mountPath(basePath, opts.ElementsPath)
	// Without an identifier segment the elements route still answers with
	// the missing identifier error instead of a router 404.
	bare := mountPath(basePath, strings.Replace(opts.ElementsPath, "/{"+IDParam+"}", "", 1))
	submitPath := mountPath(basePath, opts.SubmitPath)

	r.Get(elements, h.elements)
	if bare != elements {
		r.Get(bare, h.elements)
	}
	r.Post(submitPath, h.submit)
	patterns := []string{elements, submitPath}

	if opts.Previewer != nil {
		preview := mountPath(basePath, opts.PreviewPath)
		r.Get(preview, h.preview)
		patterns = append(patterns, preview)
	}
	return patterns, nil
}

// NewHandler builds a standalone router serving the adapter at the root.
func NewHandler(svc Service, fns ...OptionFn) (http.Handler, error) {
	r := chi.NewRouter()
	if _, err := RegisterRoutes(r, "/", svc, fns...); err != nil {
		return nil, err
	}
	return r, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}

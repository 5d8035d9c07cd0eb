// Package app wires configuration, backends, and the HTTP surface into a
// runnable server.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	webformvue "github.com/goliatone/go-webformvue"
	"github.com/goliatone/go-webformvue/components/webformapi"
	"github.com/goliatone/go-webformvue/internal/config"
	"github.com/goliatone/go-webformvue/internal/metrics"
	"github.com/goliatone/go-webformvue/internal/store/filestore"
	"github.com/goliatone/go-webformvue/pkg/apidoc"
	"github.com/goliatone/go-webformvue/pkg/preview"
	"github.com/goliatone/go-webformvue/pkg/translate"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

// Option configures an App.
type Option func(*App)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *App) {
		a.Logger = logger
		a.loggerSet = true
	}
}

// WithRegistry registers metrics on reg instead of a registry owned by the App.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		if reg != nil {
			a.Metrics = metrics.NewWithRegistry(reg, reg)
		}
	}
}

// WithBackend bypasses backend construction.
func WithBackend(backend webform.Backend) Option {
	return func(a *App) {
		a.backend = backend
	}
}

// App owns the server and every resource it opened.
type App struct {
	Config  config.Config
	Logger  zerolog.Logger
	Metrics *metrics.Collector
	Service *webformvue.Service
	Handler http.Handler
	Server  *http.Server
	Routes  []string

	loggerSet bool
	backend   webform.Backend
	store     *filestore.Store
	closers   []io.Closer
}

// New builds the application from cfg.
func New(ctx context.Context, cfg config.Config, options ...Option) (*App, error) {
	a := &App{Config: cfg}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	if !a.loggerSet {
		a.Logger = NewLogger(cfg.Logging.Level, cfg.Logging.Format, nil)
	}
	if a.Metrics == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.Metrics = metrics.NewWithRegistry(reg, reg)
	}

	if a.backend == nil {
		parts, err := buildBackend(cfg.Backend, a.Logger, a.Metrics)
		if err != nil {
			return nil, fmt.Errorf("app: backend: %w", err)
		}
		a.backend = parts.backend
		a.store = parts.store
		a.closers = parts.closers
	}

	var translatorOpts []translate.Option
	if cfg.Translator.StripMarkup {
		translatorOpts = append(translatorOpts, translate.WithMarkupStripping())
	}
	a.Service = webformvue.New(a.backend, webformvue.WithTranslatorOptions(translatorOpts...))

	handler, err := a.router(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	a.Handler = handler
	a.Server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return a, nil
}

func (a *App) router(ctx context.Context) (http.Handler, error) {
	cfg := a.Config
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(a.Logger))
	r.Use(middleware.Recoverer)
	if cfg.Server.WriteTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.WriteTimeout))
	}
	if cfg.Metrics.Enabled {
		r.Use(a.Metrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, a.Metrics.Handler())
	}
	if cfg.OpenAPI.Enabled {
		doc, err := apidoc.Load(ctx, cfg.Server.BasePath)
		if err != nil {
			return nil, fmt.Errorf("app: openapi: %w", err)
		}
		h, err := apidoc.Handler(doc)
		if err != nil {
			return nil, fmt.Errorf("app: openapi: %w", err)
		}
		r.Method(http.MethodGet, cfg.OpenAPI.Path, h)
	}

	fns := []webformapi.OptionFn{
		webformapi.WithLogger(a.Logger.With().Str("component", "webformapi").Logger()),
		webformapi.WithRecorder(a.Metrics),
	}
	if cfg.Preview.Enabled {
		renderer, err := preview.New(
			preview.WithThemeSelector(preview.DefaultThemes(), cfg.Preview.Theme, cfg.Preview.Variant),
			preview.WithSubmitURL(webformapi.MountPath(cfg.Server.BasePath, webformapi.DefaultOptions().SubmitPath)),
		)
		if err != nil {
			return nil, fmt.Errorf("app: preview: %w", err)
		}
		fns = append(fns, webformapi.WithPreviewer(renderer))
	}

	routes, err := webformapi.New(a.Service, fns...).RegisterRoutes(r, cfg.Server.BasePath)
	if err != nil {
		return nil, fmt.Errorf("app: routes: %w", err)
	}
	a.Routes = routes
	return r, nil
}

// Run serves until ctx is canceled or the server fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.store != nil && a.Config.Backend.Watch {
		go func() {
			if err := a.store.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.Logger.Error().Err(err).Msg("definition watcher stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.Server.Addr).
			Strs("routes", a.Routes).
			Msg("starting http server")
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.Logger.Info().Msg("shutting down")
	}
	return a.Shutdown()
}

// Shutdown stops the server and releases backend resources.
func (a *App) Shutdown() error {
	timeout := a.Config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
			errs = append(errs, err)
		}
	}
	if err := a.close(); err != nil {
		errs = append(errs, err)
	}
	a.Logger.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

func (a *App) close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("close error")
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

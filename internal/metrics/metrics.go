// Package metrics provides Prometheus metrics collection for the adapter.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "webformvue"

// Collector holds all Prometheus metrics for the service.
type Collector struct {
	// Request metrics
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Adapter metrics
	Outcomes *prometheus.CounterVec

	// Definition store metrics
	DefinitionsLoaded  prometheus.Gauge
	DefinitionReloads  prometheus.Counter
	DefinitionFailures prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewWithRegistry creates a collector registered on reg and served from
// gatherer.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route", "status"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
		Outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Adapter results by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		DefinitionsLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "definitions_loaded",
				Help:      "Number of webform definitions currently loaded",
			},
		),
		DefinitionReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "definition_reloads_total",
				Help:      "Total number of successful definition reloads",
			},
		),
		DefinitionFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "definition_reload_errors_total",
				Help:      "Total number of failed definition reloads",
			},
		),
		gatherer: gatherer,
	}
}

// ObserveOutcome counts one adapter result.
func (c *Collector) ObserveOutcome(operation, outcome string) {
	if c == nil {
		return
	}
	c.Outcomes.WithLabelValues(operation, outcome).Inc()
}

// ObserveReload records a definition reload.
func (c *Collector) ObserveReload(count int, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.DefinitionFailures.Inc()
		return
	}
	c.DefinitionReloads.Inc()
	c.DefinitionsLoaded.Set(float64(count))
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Middleware times requests. Routes are labelled by their chi pattern so
// identifiers do not explode label cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		c.RequestsInFlight.Inc()
		defer c.RequestsInFlight.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		c.RequestDuration.
			WithLabelValues(r.Method, routePattern(r), statusLabel(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// statusLabel returns a string label for the status code.
func statusLabel(status int) string {
	switch {
	case status == 0:
		return "2xx"
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return strconv.Itoa(status)
	}
}

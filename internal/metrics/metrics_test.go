package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/goliatone/go-webformvue/internal/metrics"
)

func newCollector() (*metrics.Collector, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.NewWithRegistry(reg, reg), reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matches(metric.GetLabel(), labels) {
				if c := metric.GetCounter(); c != nil {
					return c.GetValue()
				}
				if g := metric.GetGauge(); g != nil {
					return g.GetValue()
				}
			}
		}
	}
	return 0
}

func matches(pairs []*dto.LabelPair, labels map[string]string) bool {
	found := 0
	for _, pair := range pairs {
		if labels[pair.GetName()] == pair.GetValue() {
			found++
		}
	}
	return found == len(labels)
}

func TestObserveOutcome(t *testing.T) {
	m, reg := newCollector()
	m.ObserveOutcome("submit", "ok")
	m.ObserveOutcome("submit", "ok")
	m.ObserveOutcome("elements", "not_found")

	if got := counterValue(t, reg, "webformvue_outcomes_total", map[string]string{"operation": "submit", "outcome": "ok"}); got != 2 {
		t.Fatalf("expected 2 submit:ok, got %v", got)
	}
	if got := counterValue(t, reg, "webformvue_outcomes_total", map[string]string{"operation": "elements", "outcome": "not_found"}); got != 1 {
		t.Fatalf("expected 1 elements:not_found, got %v", got)
	}
}

func TestObserveReload(t *testing.T) {
	m, reg := newCollector()
	m.ObserveReload(3, nil)
	m.ObserveReload(0, errors.New("bad yaml"))

	if got := counterValue(t, reg, "webformvue_definitions_loaded", nil); got != 3 {
		t.Fatalf("expected 3 loaded definitions, got %v", got)
	}
	if got := counterValue(t, reg, "webformvue_definition_reload_errors_total", nil); got != 1 {
		t.Fatalf("expected 1 reload error, got %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m, _ := newCollector()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/{webform_id}/elements", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/contact/elements", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `route="/{webform_id}/elements"`) {
		t.Fatalf("expected route pattern label, got:\n%s", body)
	}
	if !strings.Contains(body, `status="4xx"`) {
		t.Fatalf("expected status label, got:\n%s", body)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var m *metrics.Collector
	m.ObserveOutcome("submit", "ok")
	m.ObserveReload(1, nil)
	if m.Handler() == nil {
		t.Fatalf("expected fallback handler")
	}
}

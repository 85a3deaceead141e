// Package metrics defines the Prometheus collectors of the widget server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Renders       *prometheus.CounterVec
	RenderErrors  *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	CacheLookups  *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "league_widgets",
			Name:      "renders_total",
			Help:      "Widgets rendered, by widget and output format.",
		}, []string{"widget", "format"}),
		RenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "league_widgets",
			Name:      "render_errors_total",
			Help:      "Widget requests that failed, by widget and stage.",
		}, []string{"widget", "stage"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "league_widgets",
			Name:      "api_fetch_duration_seconds",
			Help:      "Duration of league API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "league_widgets",
			Name:      "cache_lookups_total",
			Help:      "API response cache lookups, by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.Renders,
		m.RenderErrors,
		m.FetchDuration,
		m.CacheLookups,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRender(widget, format string) {
	if m == nil {
		return
	}
	m.Renders.WithLabelValues(widget, format).Inc()
}

func (m *Metrics) ObserveRenderError(widget, stage string) {
	if m == nil {
		return
	}
	m.RenderErrors.WithLabelValues(widget, stage).Inc()
}

func (m *Metrics) ObserveFetch(resource string, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.FetchDuration.WithLabelValues(resource, outcome).Observe(seconds)
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

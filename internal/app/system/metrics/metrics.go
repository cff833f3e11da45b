// internal/app/system/metrics/metrics.go
//
// Package metrics exposes Prometheus request metrics and a few domain
// counters on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. Build one per process with New.
type Metrics struct {
	reg *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	// Domain counters, incremented by feature handlers.
	AppointmentsCreated prometheus.Counter
	PropertiesSaved     prometheus.Counter
	EmailFailures       *prometheus.CounterVec
	SearchCacheHits     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_http_requests_total",
			Help: "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "estatehub_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		AppointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "estatehub_appointments_created_total",
			Help: "Appointments booked.",
		}),
		PropertiesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "estatehub_properties_saved_total",
			Help: "Successful save-to-favorites actions.",
		}),
		EmailFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_email_failures_total",
			Help: "Emails that could not be sent, by kind.",
		}, []string{"kind"}),
		SearchCacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_search_cache_lookups_total",
			Help: "Property search cache lookups by result (hit|miss).",
		}, []string{"result"}),
	}
	m.reg.MustRegister(
		m.requests, m.duration,
		m.AppointmentsCreated, m.PropertiesSaved, m.EmailFailures, m.SearchCacheHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Middleware records count and latency per chi route pattern. Using the
// pattern rather than the raw path keeps label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// The helpers below are safe on a nil *Metrics so handlers can run
// without a registry in tests.

// CacheLookup counts a search cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SearchCacheHits.WithLabelValues(result).Inc()
}

// EmailFailed counts an email of the given kind that could not be sent.
func (m *Metrics) EmailFailed(kind string) {
	if m == nil {
		return
	}
	m.EmailFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) AppointmentCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.Inc()
}

func (m *Metrics) PropertySaved() {
	if m == nil {
		return
	}
	m.PropertiesSaved.Inc()
}

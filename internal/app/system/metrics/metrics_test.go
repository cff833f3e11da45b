package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/properties/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/properties/abc", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	want := `estatehub_http_requests_total{method="GET",route="/api/properties/{id}",status="418"} 1`
	if !strings.Contains(body, want) {
		t.Errorf("metrics output missing %q", want)
	}
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.AppointmentsCreated.Inc()
	m.EmailFailures.WithLabelValues("appointment_confirmation").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, "estatehub_appointments_created_total 1") {
		t.Error("appointments counter missing")
	}
	if !strings.Contains(body, `estatehub_email_failures_total{kind="appointment_confirmation"} 1`) {
		t.Error("email failure counter missing")
	}
}

func TestHelpers_NilSafe(t *testing.T) {
	var m *Metrics
	m.CacheLookup(true)
	m.EmailFailed("contact")
	m.AppointmentCreated()
	m.PropertySaved()
}

func TestCacheLookup(t *testing.T) {
	m := New()
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	for _, want := range []string{
		`estatehub_search_cache_lookups_total{result="hit"} 1`,
		`estatehub_search_cache_lookups_total{result="miss"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

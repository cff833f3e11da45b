package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/estatehub/internal/app/features/home"
	"github.com/dalemusser/estatehub/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	home.Routes(r, home.NewHandler("EstateHub", "1.0.0"))
	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {})
	return r
}

func TestServeRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	body := testutil.DecodeBody(t, rec)
	if body["message"] != "EstateHub API" {
		t.Errorf("message = %v", body["message"])
	}
	endpoints, ok := body["endpoints"].(map[string]any)
	if !ok || endpoints["properties"] != "/api/properties" {
		t.Errorf("endpoints = %v", body["endpoints"])
	}
}

func TestFallbacks(t *testing.T) {
	tests := []struct {
		method, path string
		want         int
		message      string
	}{
		{http.MethodGet, "/nope", http.StatusNotFound, "Route not found"},
		{http.MethodGet, "/api/nothing/here", http.StatusNotFound, "Route not found"},
		{http.MethodPost, "/api/ping", http.StatusMethodNotAllowed, "Method not allowed"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		testutil.AssertStatus(t, rec, tt.want)
		testutil.AssertMessage(t, rec, tt.message)
	}
}

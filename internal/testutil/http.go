package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/domain/models"
)

// ActorFor converts a stored user into the request-context user.
func ActorFor(u models.User) *auth.User {
	return &auth.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// WithActor authenticates r as u, bypassing token verification.
func WithActor(r *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(r, ActorFor(u))
}

// JSONRequest builds a request with body encoded as JSON. A nil body sends
// no payload.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(method, target, rd)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// DecodeBody decodes a recorded JSON response into a generic map.
func DecodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// AssertStatus fails the test when rec has an unexpected status.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

// AssertMessage checks the envelope's message field.
func AssertMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got, _ := DecodeBody(t, rec)["message"].(string); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

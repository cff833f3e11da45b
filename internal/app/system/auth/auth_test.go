package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "test-secret-must-be-at-least-32-characters"

// mapFetcher resolves users from an in-memory map.
type mapFetcher map[string]*auth.User

func (f mapFetcher) FetchUser(_ context.Context, id string) *auth.User { return f[id] }

func newTestManager(t *testing.T, fetcher auth.UserFetcher) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager(testSecret, time.Hour, fetcher, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewManager_EmptySecret(t *testing.T) {
	if _, err := auth.NewManager("", time.Hour, nil, zap.NewNop()); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestIssueAndParse(t *testing.T) {
	m := newTestManager(t, nil)
	u := models.User{ID: primitive.NewObjectID(), Role: models.RoleAgent}

	tok, err := m.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ID != u.ID.Hex() {
		t.Errorf("claims.ID = %q, want %q", claims.ID, u.ID.Hex())
	}
	if claims.Role != "agent" {
		t.Errorf("claims.Role = %q", claims.Role)
	}
}

func TestParse_RejectsForeignSignature(t *testing.T) {
	other, _ := auth.NewManager("another-secret-that-is-also-32-chars-long", time.Hour, nil, zap.NewNop())
	tok, _ := other.Issue(models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})

	if _, err := newTestManager(t, nil).Parse(tok); err == nil {
		t.Error("expected signature error")
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	claims := auth.Claims{
		ID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "estatehub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newTestManager(t, nil).Parse(tok); err == nil {
		t.Error("expected expiry error")
	}
}

func TestLoadUser_ValidToken(t *testing.T) {
	id := primitive.NewObjectID()
	fetcher := mapFetcher{id.Hex(): {ID: id, Name: "Ada", Role: models.RoleClient}}
	m := newTestManager(t, fetcher)
	tok, _ := m.Issue(models.User{ID: id, Role: models.RoleClient})

	var got *auth.User
	h := m.LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || got.ID != id {
		t.Fatalf("user not loaded: %+v", got)
	}
}

func TestLoadUser_DeactivatedUserIsAnonymous(t *testing.T) {
	id := primitive.NewObjectID()
	m := newTestManager(t, mapFetcher{})
	tok, _ := m.Issue(models.User{ID: id, Role: models.RoleClient})

	called := false
	h := m.LoadUser(m.RequireSignedIn(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if called {
		t.Error("handler should not run for unknown user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireSignedIn_NoUser_Returns401(t *testing.T) {
	m := newTestManager(t, nil)
	called := false
	rec := httptest.NewRecorder()
	m.RequireSignedIn(okHandler(&called)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if called || rec.Code != http.StatusUnauthorized {
		t.Errorf("called=%v status=%d, want 401", called, rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	m := newTestManager(t, nil)

	tests := []struct {
		role models.Role
		want int
	}{
		{models.RoleAgent, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
		{models.RoleClient, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			called := false
			h := m.RequireRole(models.RoleAgent, models.RoleAdmin)(okHandler(&called))

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req = auth.WithTestUser(req, &auth.User{ID: primitive.NewObjectID(), Role: tt.role})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if called != (tt.want == http.StatusOK) {
				t.Errorf("called = %v", called)
			}
		})
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	if _, ok := auth.CurrentUser(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Error("expected no user")
	}
}

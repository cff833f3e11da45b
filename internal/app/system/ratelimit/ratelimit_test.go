package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowAndRemaining(t *testing.T) {
	l := New(2, time.Minute)
	defer l.Stop()

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two hits should pass")
	}
	if l.Allow("a") {
		t.Error("third hit should be limited")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
	if got := l.Remaining("b"); got != 2 {
		t.Errorf("Remaining(b) = %d, want 2", got)
	}

	l.Reset("a")
	if !l.Allow("a") {
		t.Error("hit after Reset should pass")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(1, 20*time.Millisecond)
	defer l.Stop()

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("second hit inside window should fail")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("hit after window should pass")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"xff first hop", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "9.9.9.9:1", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": " 3.3.3.3 "}, "9.9.9.9:1", "3.3.3.3"},
		{"remote with port", nil, "4.4.4.4:5555", "4.4.4.4"},
		{"remote without port", nil, "5.5.5.5", "5.5.5.5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Stop()

	h := l.Middleware("slow down")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
		if rec.Code != want {
			t.Errorf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}
}

func TestLoginLimiter_PerEmail(t *testing.T) {
	ll := NewLoginLimiter(100, 2)
	defer ll.Stop()

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "A@x.com"); !ok {
			t.Fatalf("attempt %d should pass", i)
		}
	}
	if ok, reason := ll.Check(r, " a@x.com "); ok || reason == "" {
		t.Error("third attempt for same email should be blocked")
	}

	ll.ResetEmail("a@x.com")
	if ok, _ := ll.Check(r, "a@x.com"); !ok {
		t.Error("attempt after reset should pass")
	}
}

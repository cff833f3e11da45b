// internal/app/system/auth/auth.go
//
// Package auth issues and verifies bearer tokens and loads the calling user
// into the request context.
//
// Tokens are HS256 JWTs carrying the user's ID and role. The role in the
// token is informational only: on every request the user is re-read through
// a UserFetcher, so role changes and deactivation apply immediately.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MinSecretLen is the shortest signing secret accepted in production.
const MinSecretLen = 32

const issuer = "estatehub"

// User is the authenticated caller, as placed in the request context.
type User struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Role  models.Role
}

func (u User) IsAdmin() bool { return u.Role == models.RoleAdmin }

// Claims are the JWT claims issued at login.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserFetcher loads a fresh, active user by hex ID. It returns nil when the
// user does not exist, is deactivated, or cannot be loaded.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *User
}

// Manager signs tokens and provides the auth middleware.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	fetcher UserFetcher
	log     *zap.Logger
}

var errEmptySecret = errors.New("jwt secret is empty")

// NewManager builds a Manager. fetcher may be nil only in tests that inject
// users with WithTestUser.
func NewManager(secret string, ttl time.Duration, fetcher UserFetcher, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	if len(secret) < MinSecretLen {
		logger.Warn("jwt secret is short; 32+ chars recommended", zap.Int("length", len(secret)))
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, fetcher: fetcher, log: logger}, nil
}

// Issue signs a token for u.
func (m *Manager) Issue(u models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:   u.ID.Hex(),
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies a token and returns its claims.
func (m *Manager) Parse(token string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Context                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated caller, if any.
func CurrentUser(r *http.Request) (*User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*User)
	return u, ok && u != nil
}

func withUser(r *http.Request, u *User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects u into the request, bypassing token verification.
func WithTestUser(r *http.Request, u *User) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// LoadUser puts the caller into the context when a valid bearer token is
// present. Requests without one pass through anonymously.
func (m *Manager) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		raw := bearerToken(r)
		if raw == "" || m.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := m.Parse(raw)
		if err != nil {
			m.log.Debug("rejected bearer token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if u := m.fetcher.FetchUser(r.Context(), claims.ID); u != nil {
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects anonymous callers with 401.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			respond.Unauthorized(w, "Not authorized to access this route")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects anonymous callers with 401 and callers whose role is
// not listed with 403.
func (m *Manager) RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	set := make(map[models.Role]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Unauthorized(w, "Not authorized to access this route")
				return
			}
			if _, has := set[u.Role]; !has {
				respond.Forbidden(w, fmt.Sprintf("User role %s is not authorized to access this route", u.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

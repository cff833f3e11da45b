// internal/app/system/authz/roles.go
package authz

import (
	"net/http"

	"github.com/dalemusser/estatehub/internal/domain/models"
)

// HasAnyRole reports whether the caller has any of the given roles.
// Returns false when no one is signed in.
func HasAnyRole(r *http.Request, roles ...models.Role) bool {
	u, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if u.Role == want {
			return true
		}
	}
	return false
}

// Role returns the caller's role and whether anyone is signed in.
func Role(r *http.Request) (models.Role, bool) {
	u, ok := UserCtx(r)
	return u.Role, ok
}

// internal/app/features/upload/routes.go
package upload

import (
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/upload.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.RequireSignedIn)

	r.Post("/avatar", h.HandleAvatar)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireRole(models.RoleAgent, models.RoleAdmin))
		pr.Post("/property", h.HandlePropertyImages)
		pr.Delete("/{id}", h.HandleDelete)
	})
	return r
}

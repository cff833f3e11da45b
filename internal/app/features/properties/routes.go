// internal/app/features/properties/routes.go
package properties

import (
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/properties.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeSearch)
	r.Get("/featured", h.ServeFeatured)
	r.Get("/agent/{agentId}", h.ServeByAgent)
	r.Get("/{id}", h.ServeProperty)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireRole(models.RoleAgent, models.RoleAdmin))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})
	return r
}

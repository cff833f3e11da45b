// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/users.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Get("/agents", h.ServeAgents)
	r.Get("/agents/{id}", h.ServeAgent)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)
		pr.Get("/saved", h.ServeSaved)
		pr.Get("/save/{propertyId}", h.ServeIsSaved)
		pr.Post("/save/{propertyId}", h.HandleSave)
		pr.Delete("/save/{propertyId}", h.HandleUnsave)
	})
	return r
}

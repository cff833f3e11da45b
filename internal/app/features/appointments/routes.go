// internal/app/features/appointments/routes.go
package appointments

import (
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/appointments. Every route needs a signed-in
// caller; status changes are for agents and admins.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.RequireSignedIn)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/my", h.ServeMine)
	r.Get("/{id}", h.ServeAppointment)
	r.Delete("/{id}", h.HandleDelete)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireRole(models.RoleAgent, models.RoleAdmin))
		pr.Put("/{id}/status", h.HandleUpdateStatus)
	})
	return r
}

// internal/app/features/account/routes.go
package account

import (
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/auth.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
		pr.Put("/updatedetails", h.HandleUpdateDetails)
		pr.Put("/updatepassword", h.HandleUpdatePassword)
	})
	return r
}

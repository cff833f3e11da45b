// internal/app/features/contact/routes.go
package contact

import (
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/contact. Both routes are public; the form is
// throttled per client IP when limiter is non-nil.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Post("/whatsapp", h.HandleWhatsApp)
	r.Group(func(pr chi.Router) {
		if limiter != nil {
			pr.Use(limiter.Middleware("Too many messages. Please try again later."))
		}
		pr.Post("/", h.HandleContact)
	})
	return r
}

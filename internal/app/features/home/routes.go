// internal/app/features/home/routes.go
package home

import "github.com/go-chi/chi/v5"

// Routes registers the index on r and installs the JSON fallbacks.
func Routes(r chi.Router, h *Handler) {
	r.Get("/", h.ServeRoot)
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)
}

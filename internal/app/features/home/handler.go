// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/respond"
)

// Handler serves the API index and the JSON fallback for unknown routes.
type Handler struct {
	Name    string
	Version string
}

func NewHandler(name, version string) *Handler {
	return &Handler{Name: name, Version: version}
}

// Endpoints lists the mounted API groups.
var Endpoints = map[string]string{
	"auth":         "/api/auth",
	"properties":   "/api/properties",
	"users":        "/api/users",
	"appointments": "/api/appointments",
	"upload":       "/api/upload",
	"contact":      "/api/contact",
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – API index                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, respond.M{
		"message":   h.Name + " API",
		"version":   h.Version,
		"status":    "Server is running!",
		"endpoints": Endpoints,
	})
}

// NotFound answers any unmatched route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.NotFound(w, "Route not found")
}

// MethodNotAllowed answers a known path hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
}

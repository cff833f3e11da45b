// internal/app/features/appointments/list.go
package appointments

import (
	"net/http"

	appointmentstore "github.com/dalemusser/estatehub/internal/app/store/appointments"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList lists appointments visible to the caller: all of them for
// admins, the agent's own for agents, and the client's own bookings
// otherwise. An optional ?status= narrows the list; unknown values are
// ignored.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	f := appointmentstore.ListFilter{}
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleAgent:
		f.AgentID = &actor.ID
	default:
		f.ClientID = &actor.ID
	}
	if s := models.AppointmentStatus(query.Get(r, "status")); s.Valid() {
		f.Status = s
	}
	h.list(w, r, f)
}

// ServeMine lists the caller's own bookings as a client.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}
	h.list(w, r, appointmentstore.ListFilter{ClientID: &actor.ID})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, f appointmentstore.ListFilter) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list appointments")
	defer cancel()

	store := appointmentstore.New(h.DB)
	appts, err := store.List(ctx, f)
	if err != nil {
		respond.ServerError(w, h.Log, "list appointments", err)
		return
	}
	views, err := store.Populate(ctx, appts)
	if err != nil {
		respond.ServerError(w, h.Log, "populate appointments", err)
		return
	}
	respond.OK(w, respond.M{"count": len(views), "appointments": views})
}

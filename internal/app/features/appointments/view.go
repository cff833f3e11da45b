// internal/app/features/appointments/view.go
package appointments

import (
	"errors"
	"net/http"

	appointmentstore "github.com/dalemusser/estatehub/internal/app/store/appointments"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// load fetches the appointment named by the {id} URL parameter and writes
// 404 or 500 itself when it cannot.
func (h *Handler) load(w http.ResponseWriter, r *http.Request, store *appointmentstore.Store) (*models.Appointment, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Appointment not found")
		return nil, false
	}
	a, err := store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, appointmentstore.ErrNotFound) {
			respond.NotFound(w, "Appointment not found")
			return nil, false
		}
		respond.ServerError(w, h.Log, "load appointment", err)
		return nil, false
	}
	return a, true
}

// ServeAppointment returns one appointment to its client, its agent, or an admin.
func (h *Handler) ServeAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view appointment")
	defer cancel()
	r = r.WithContext(ctx)

	store := appointmentstore.New(h.DB)
	a, ok := h.load(w, r, store)
	if !ok {
		return
	}
	if !authz.CanViewAppointment(actor, *a) {
		respond.Forbidden(w, "Not authorized to view this appointment")
		return
	}

	views, err := store.Populate(ctx, []models.Appointment{*a})
	if err != nil {
		respond.ServerError(w, h.Log, "populate appointment", err)
		return
	}
	respond.OK(w, respond.M{"appointment": views[0]})
}

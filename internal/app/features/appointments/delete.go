// internal/app/features/appointments/delete.go
package appointments

import (
	"errors"
	"net/http"

	appointmentstore "github.com/dalemusser/estatehub/internal/app/store/appointments"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes an appointment. Its client, its agent, or an admin
// may do so.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete appointment")
	defer cancel()
	r = r.WithContext(ctx)

	store := appointmentstore.New(h.DB)
	a, ok := h.load(w, r, store)
	if !ok {
		return
	}
	if !authz.CanDeleteAppointment(actor, *a) {
		respond.Forbidden(w, "Not authorized to delete this appointment")
		return
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		if errors.Is(err, appointmentstore.ErrNotFound) {
			respond.NotFound(w, "Appointment not found")
			return
		}
		respond.ServerError(w, h.Log, "delete appointment", err)
		return
	}
	h.Log.Info("appointment deleted", zap.String("appointment_id", a.ID.Hex()), zap.String("by", actor.ID.Hex()))
	respond.OK(w, respond.M{"message": "Appointment deleted successfully"})
}

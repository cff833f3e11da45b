// internal/app/features/appointments/status.go
package appointments

import (
	"errors"
	"net/http"

	appointmentstore "github.com/dalemusser/estatehub/internal/app/store/appointments"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/events"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleUpdateStatus sets an appointment's status. Any status may follow
// any other; leaving cancelled or completed is allowed but logged.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update appointment status")
	defer cancel()
	r = r.WithContext(ctx)

	store := appointmentstore.New(h.DB)
	a, ok := h.load(w, r, store)
	if !ok {
		return
	}
	if !authz.CanUpdateAppointmentStatus(actor, *a) {
		respond.Forbidden(w, "Not authorized to update this appointment")
		return
	}

	var in statusInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}
	next := models.AppointmentStatus(in.Status)

	prev, updated, err := store.UpdateStatus(ctx, a.ID, next)
	if err != nil {
		if errors.Is(err, appointmentstore.ErrNotFound) {
			respond.NotFound(w, "Appointment not found")
			return
		}
		respond.ServerError(w, h.Log, "update appointment status", err)
		return
	}
	if prev.IsTerminal() && prev != next {
		h.Log.Warn("appointment left a terminal status",
			zap.String("appointment_id", a.ID.Hex()),
			zap.String("from", string(prev)),
			zap.String("to", string(next)),
			zap.String("by", actor.ID.Hex()))
	}

	h.Events.Publish(ctx, events.AppointmentStatusChanged, appointmentEvent{
		AppointmentID: updated.ID.Hex(),
		PropertyID:    updated.PropertyID.Hex(),
		ClientID:      updated.ClientID.Hex(),
		AgentID:       updated.AgentID.Hex(),
		Status:        string(next),
		PrevStatus:    string(prev),
	})

	views, err := store.Populate(ctx, []models.Appointment{*updated})
	if err != nil {
		respond.ServerError(w, h.Log, "populate appointment", err)
		return
	}
	respond.OK(w, respond.M{
		"message":     "Appointment status updated successfully",
		"appointment": views[0],
	})
}

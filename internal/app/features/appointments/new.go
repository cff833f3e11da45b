// internal/app/features/appointments/new.go
package appointments

import (
	"errors"
	"net/http"
	"time"

	appointmentstore "github.com/dalemusser/estatehub/internal/app/store/appointments"
	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	userstore "github.com/dalemusser/estatehub/internal/app/store/users"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/events"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/mailer"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate books a visit to an active listing. The agent is taken from
// the listing. The confirmation email goes out after the booking is
// stored and its failure does not fail the request.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	var in createInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	res := inputval.Validate(in)
	date, err := inputval.ParseDate(in.AppointmentDate)
	if err == nil && date.Before(time.Now().UTC().Truncate(24*time.Hour)) {
		res.Add("appointmentDate", "Appointment date cannot be in the past.")
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}
	pid, _ := primitive.ObjectIDFromHex(in.Property)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create appointment")
	defer cancel()

	prop, err := propertystore.New(h.DB).GetByID(ctx, pid)
	if err != nil && !errors.Is(err, propertystore.ErrNotFound) {
		respond.ServerError(w, h.Log, "load property for appointment", err)
		return
	}
	if prop == nil || !prop.IsActive {
		respond.NotFound(w, "Property not found")
		return
	}

	apptType := models.AppointmentViewing
	if in.Type != "" {
		apptType = models.AppointmentType(in.Type)
	}
	appt, err := appointmentstore.New(h.DB).Create(ctx, models.Appointment{
		PropertyID:      prop.ID,
		ClientID:        actor.ID,
		AgentID:         prop.AgentID,
		AppointmentDate: date,
		AppointmentTime: in.AppointmentTime,
		Type:            apptType,
		Notes:           in.Notes,
		ClientContact: models.ClientContact{
			Name:  normalize.Name(in.ClientContact.Name),
			Email: normalize.Email(in.ClientContact.Email),
			Phone: in.ClientContact.Phone,
		},
	})
	if err != nil {
		respond.ServerError(w, h.Log, "create appointment", err)
		return
	}

	h.Metrics.AppointmentCreated()
	h.Events.Publish(ctx, events.AppointmentCreated, appointmentEvent{
		AppointmentID: appt.ID.Hex(),
		PropertyID:    appt.PropertyID.Hex(),
		ClientID:      appt.ClientID.Hex(),
		AgentID:       appt.AgentID.Hex(),
		Status:        string(appt.Status),
	})
	h.Log.Info("appointment created",
		zap.String("appointment_id", appt.ID.Hex()),
		zap.String("property_id", prop.ID.Hex()))

	data := mailer.AppointmentEmailData{
		SiteName:        h.SiteName,
		ClientName:      appt.ClientContact.Name,
		PropertyTitle:   prop.Title,
		AppointmentDate: appt.AppointmentDate,
		AppointmentTime: appt.AppointmentTime,
	}
	if agent, err := userstore.New(h.DB).GetByID(ctx, prop.AgentID); err == nil {
		data.AgentName = agent.Name
		data.AgentPhone = agent.Phone
	} else {
		h.Log.Warn("load agent for confirmation email", zap.String("agent_id", prop.AgentID.Hex()), zap.Error(err))
	}
	email := mailer.BuildAppointmentConfirmation(data)
	email.To = appt.ClientContact.Email
	h.sendAsync(r.Context(), "appointment_confirmation", email)

	views, err := appointmentstore.New(h.DB).Populate(ctx, []models.Appointment{appt})
	if err != nil {
		respond.ServerError(w, h.Log, "populate appointment", err)
		return
	}
	respond.Created(w, respond.M{
		"message":     "Appointment created successfully. Confirmation email sent!",
		"appointment": views[0],
	})
}

// internal/app/features/contact/contact.go
package contact

import (
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/mailer"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type contactInput struct {
	Name          string `json:"name" validate:"required,max=100" label:"Name"`
	Email         string `json:"email" validate:"required,email" label:"Email"`
	Phone         string `json:"phone" validate:"required,max=20" label:"Phone"`
	Message       string `json:"message" validate:"required,max=500" label:"Message"`
	PropertyTitle string `json:"propertyTitle" validate:"max=100" label:"Property title"`
	PropertyID    string `json:"propertyId" validate:"omitempty,objectid" label:"Property ID"`
}

// HandleContact forwards a contact-form message to the operator and sends
// the visitor an acknowledgement.
func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	in.Name = normalize.Name(in.Name)
	in.Email = normalize.Email(in.Email)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "send contact form")
	defer cancel()

	note := mailer.BuildContactNotification(mailer.ContactEmailData{
		SiteName:      h.SiteName,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Message:       in.Message,
		PropertyTitle: in.PropertyTitle,
		PropertyID:    in.PropertyID,
	})
	note.To = h.Operator
	if err := h.Mail.Send(ctx, note); err != nil {
		h.fail(w, "contact_notification", err)
		return
	}

	reply := mailer.BuildContactAutoReply(h.SiteName, in.Name)
	reply.To = in.Email
	if err := h.Mail.Send(ctx, reply); err != nil {
		h.fail(w, "contact_auto_reply", err)
		return
	}

	h.Log.Info("contact form sent", zap.String("from", in.Email), zap.String("property_id", in.PropertyID))
	respond.OK(w, respond.M{"message": "Thank you for contacting us! We will get back to you soon."})
}

func (h *Handler) fail(w http.ResponseWriter, kind string, err error) {
	h.Log.Error("send email", zap.String("kind", kind), zap.Error(err))
	respond.Fail(w, http.StatusInternalServerError, "Failed to send message. Please try again later.")
}

// internal/app/features/contact/whatsapp.go
package contact

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
)

type whatsAppInput struct {
	AgentPhone    string `json:"agentPhone" validate:"required" label:"Agent phone"`
	PropertyTitle string `json:"propertyTitle"`
	UserName      string `json:"userName"`
	CustomMessage string `json:"customMessage" validate:"max=1000" label:"Message"`
}

// WhatsAppLink builds a wa.me click-to-chat link. Everything but digits is
// dropped from phone, and message is percent-encoded with spaces as %20.
func WhatsAppLink(phone, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalize.Digits(phone), text)
}

// DefaultWhatsAppMessage is the greeting used when the caller sends none.
func DefaultWhatsAppMessage(userName, propertyTitle string) string {
	return fmt.Sprintf("Hi! I'm %s. I'm interested in your property: %s. Can we discuss more details?", userName, propertyTitle)
}

// HandleWhatsApp returns a link that opens a WhatsApp chat with an agent.
func (h *Handler) HandleWhatsApp(w http.ResponseWriter, r *http.Request) {
	var in whatsAppInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	res := inputval.Validate(in)
	if in.AgentPhone != "" && normalize.Digits(in.AgentPhone) == "" {
		res.Add("agentPhone", "Invalid phone number.")
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	msg := strings.TrimSpace(in.CustomMessage)
	if msg == "" && in.PropertyTitle != "" {
		msg = DefaultWhatsAppMessage(strings.TrimSpace(in.UserName), in.PropertyTitle)
	}
	respond.OK(w, respond.M{"whatsappLink": WhatsAppLink(in.AgentPhone, msg)})
}

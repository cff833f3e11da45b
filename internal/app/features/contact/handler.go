// internal/app/features/contact/handler.go
package contact

import (
	"github.com/dalemusser/estatehub/internal/app/system/mailer"
	"go.uber.org/zap"
)

type Handler struct {
	Mail     mailer.Sender
	Log      *zap.Logger
	SiteName string
	// Operator receives contact-form submissions.
	Operator string
}

func NewHandler(mail mailer.Sender, siteName, operator string, logger *zap.Logger) *Handler {
	return &Handler{
		Mail:     mail,
		Log:      logger,
		SiteName: siteName,
		Operator: operator,
	}
}

// internal/app/features/appointments/handler.go
package appointments

import (
	"context"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/events"
	"github.com/dalemusser/estatehub/internal/app/system/mailer"
	"github.com/dalemusser/estatehub/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns appointment booking and the status workflow.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Mail     mailer.Sender
	Events   events.Publisher
	Metrics  *metrics.Metrics
	SiteName string

	// MailTimeout bounds the confirmation email, which runs after the
	// response is written.
	MailTimeout time.Duration
}

func NewHandler(db *mongo.Database, mail mailer.Sender, pub events.Publisher, m *metrics.Metrics, siteName string, logger *zap.Logger) *Handler {
	if pub == nil {
		pub = events.Nop{}
	}
	if mail == nil {
		mail = mailer.NewLogSender(logger)
	}
	return &Handler{
		DB:          db,
		Log:         logger,
		Mail:        mail,
		Events:      pub,
		Metrics:     m,
		SiteName:    siteName,
		MailTimeout: 30 * time.Second,
	}
}

// sendAsync delivers e in the background. Failures are logged and counted
// but never reach the caller.
func (h *Handler) sendAsync(parent context.Context, kind string, e mailer.Email) {
	ctx := context.WithoutCancel(parent)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, h.MailTimeout)
		defer cancel()
		if err := h.Mail.Send(ctx, e); err != nil {
			h.Metrics.EmailFailed(kind)
			h.Log.Error("send email",
				zap.String("kind", kind),
				zap.String("to", e.To),
				zap.Error(err))
		}
	}()
}

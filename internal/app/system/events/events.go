// internal/app/system/events/events.go
//
// Package events publishes domain events to NATS for downstream consumers
// (notifications, analytics). Publishing is best effort: failures are
// logged and never fail the request that caused them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subjects.
const (
	AppointmentCreated       = "estatehub.appointment.created"
	AppointmentStatusChanged = "estatehub.appointment.status_changed"
	PropertyCreated          = "estatehub.property.created"
	PropertyDeleted          = "estatehub.property.deleted"
)

// Envelope wraps every payload.
type Envelope struct {
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Publisher emits events.
type Publisher interface {
	Publish(ctx context.Context, subject string, data any)
	Close()
}

// Nop discards events. Used when no NATS URL is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) {}
func (Nop) Close()                               {}

// NATS publishes to a NATS server.
type NATS struct {
	conn *nats.Conn
	log  *zap.Logger
}

// NewNATS connects to url.
func NewNATS(url string, logger *zap.Logger) (*NATS, error) {
	conn, err := nats.Connect(url,
		nats.Name("estatehub"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATS{conn: conn, log: logger}, nil
}

// Encode builds the wire payload for an event.
func Encode(subject string, data any, now time.Time) ([]byte, error) {
	return json.Marshal(Envelope{Subject: subject, OccurredAt: now.UTC(), Data: data})
}

func (n *NATS) Publish(_ context.Context, subject string, data any) {
	payload, err := Encode(subject, data, time.Now())
	if err != nil {
		n.log.Error("encode event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := n.conn.Publish(subject, payload); err != nil {
		n.log.Error("publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// Close flushes pending messages and disconnects.
func (n *NATS) Close() {
	if err := n.conn.Drain(); err != nil {
		n.log.Warn("nats drain", zap.Error(err))
		n.conn.Close()
	}
}

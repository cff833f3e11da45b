// internal/app/system/mailer/mailer.go
//
// Package mailer sends transactional email through a pluggable backend:
// SMTP, the MailerSend API, or a log-only backend for development.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Email is one outgoing message. At least one of TextBody and HTMLBody
// should be set.
type Email struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Backend names accepted in Config.Backend.
const (
	BackendLog        = "log"
	BackendSMTP       = "smtp"
	BackendMailerSend = "mailersend"
)

// Config selects and configures a backend.
type Config struct {
	Backend string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	MailerSendAPIKey string

	From     string
	FromName string
}

// New builds the Sender named by cfg.Backend.
func New(cfg Config, logger *zap.Logger) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendLog:
		return NewLogSender(logger), nil
	case BackendSMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("mailer: smtp backend needs a host")
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.From, cfg.FromName), nil
	case BackendMailerSend:
		if cfg.MailerSendAPIKey == "" {
			return nil, fmt.Errorf("mailer: mailersend backend needs an API key")
		}
		return NewMailerSendSender(cfg.MailerSendAPIKey, cfg.From, cfg.FromName), nil
	}
	return nil, fmt.Errorf("mailer: unknown backend %q", cfg.Backend)
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{log: logger}
}

func (s *LogSender) Send(_ context.Context, e Email) error {
	s.log.Info("email (log backend)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.Int("text_len", len(e.TextBody)),
		zap.Int("html_len", len(e.HTMLBody)))
	return nil
}

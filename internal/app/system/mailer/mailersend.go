// internal/app/system/mailer/mailersend.go
package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mailersend/mailersend-go"
)

// MailerSendSender delivers through the MailerSend HTTP API.
type MailerSendSender struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendSender(apiKey, from, fromName string) *MailerSendSender {
	return &MailerSendSender{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: from},
	}
}

func (s *MailerSendSender) Send(ctx context.Context, e Email) error {
	msg := s.client.Email.NewMessage()
	msg.SetFrom(s.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: e.ToName, Email: e.To}})
	msg.SetSubject(e.Subject)
	if strings.TrimSpace(e.TextBody) != "" {
		msg.SetText(e.TextBody)
	}
	if strings.TrimSpace(e.HTMLBody) != "" {
		msg.SetHTML(e.HTMLBody)
	}

	res, err := s.client.Email.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailersend send: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

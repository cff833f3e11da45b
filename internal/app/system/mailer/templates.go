// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/htmlsanitize"
)

// AppointmentEmailData fills the booking confirmation sent to the client.
type AppointmentEmailData struct {
	SiteName        string
	ClientName      string
	PropertyTitle   string
	AppointmentDate time.Time
	AppointmentTime string
	AgentName       string
	AgentPhone      string
}

// BuildAppointmentConfirmation creates the confirmation email. The caller
// sets To.
func BuildAppointmentConfirmation(data AppointmentEmailData) Email {
	date := data.AppointmentDate.Format("Monday, January 2, 2006")

	var text strings.Builder
	fmt.Fprintf(&text, "Dear %s,\n\n", data.ClientName)
	text.WriteString("Your property viewing appointment has been successfully scheduled.\n\n")
	fmt.Fprintf(&text, "Property: %s\nDate: %s\nTime: %s\nAgent: %s\nAgent contact: %s\n\n",
		data.PropertyTitle, date, data.AppointmentTime, data.AgentName, data.AgentPhone)
	text.WriteString("Please arrive 5 minutes early, bring a valid ID, and contact the agent if you need to reschedule.\n")

	return Email{
		ToName:   data.ClientName,
		Subject:  fmt.Sprintf("Appointment Confirmation - %s", data.PropertyTitle),
		TextBody: text.String(),
		HTMLBody: render(appointmentTmpl, struct {
			AppointmentEmailData
			Date string
		}{data, date}),
	}
}

// ContactEmailData is a contact-form submission.
type ContactEmailData struct {
	SiteName      string
	Name          string
	Email         string
	Phone         string
	Message       string
	PropertyTitle string
	PropertyID    string
}

// BuildContactNotification creates the email sent to the site operator.
func BuildContactNotification(data ContactEmailData) Email {
	msg := htmlsanitize.StripTags(data.Message)

	var text strings.Builder
	fmt.Fprintf(&text, "From: %s\nEmail: %s\nPhone: %s\n", data.Name, data.Email, data.Phone)
	if data.PropertyTitle != "" {
		fmt.Fprintf(&text, "Property: %s", data.PropertyTitle)
		if data.PropertyID != "" {
			fmt.Fprintf(&text, " (ID: %s)", data.PropertyID)
		}
		text.WriteString("\n")
	}
	fmt.Fprintf(&text, "\nMessage:\n%s\n", msg)

	return Email{
		Subject:  fmt.Sprintf("New Contact Form Submission from %s", data.Name),
		TextBody: text.String(),
		HTMLBody: render(contactTmpl, struct {
			ContactEmailData
			MessageHTML template.HTML
		}{data, htmlsanitize.MessageHTML(data.Message)}),
	}
}

// BuildContactAutoReply creates the acknowledgement sent to the person who
// used the contact form.
func BuildContactAutoReply(siteName, name string) Email {
	text := fmt.Sprintf("Hi %s,\n\nThank you for reaching out to %s. We received your message and will get back to you within 24 hours.\n", name, siteName)
	return Email{
		ToName:   name,
		Subject:  fmt.Sprintf("Thank you for contacting %s", siteName),
		TextBody: text,
		HTMLBody: render(autoReplyTmpl, struct{ SiteName, Name string }{siteName, name}),
	}
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

const layoutHead = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;line-height:1.6;color:#333;background:#f3f4f6;">
  <div style="max-width:600px;margin:0 auto;padding:20px;">`

const layoutFoot = `
    <p style="text-align:center;margin-top:20px;color:#666;font-size:12px;">&copy; {{.SiteName}}</p>
  </div>
</body>
</html>`

var appointmentTmpl = template.Must(template.New("appointment").Parse(layoutHead + `
    <div style="background:#EF4444;color:#fff;padding:30px;text-align:center;border-radius:10px 10px 0 0;">
      <h1 style="margin:0;">Appointment Confirmed</h1>
    </div>
    <div style="background:#f9fafb;padding:30px;border-radius:0 0 10px 10px;">
      <p>Dear {{.ClientName}},</p>
      <p>Your property viewing appointment has been successfully scheduled.</p>
      <div style="background:#fff;padding:25px;border:2px solid #F97316;border-radius:8px;">
        <p><strong>Property:</strong> {{.PropertyTitle}}</p>
        <p><strong>Date:</strong> {{.Date}}</p>
        <p><strong>Time:</strong> {{.AppointmentTime}}</p>
        <p><strong>Agent:</strong> {{.AgentName}}</p>
        <p><strong>Agent Contact:</strong> <a href="tel:{{.AgentPhone}}">{{.AgentPhone}}</a></p>
      </div>
      <ul>
        <li>Please arrive 5 minutes early</li>
        <li>Bring a valid ID</li>
        <li>Contact the agent if you need to reschedule</li>
      </ul>
    </div>` + layoutFoot))

var contactTmpl = template.Must(template.New("contact").Parse(layoutHead + `
    <div style="background:#EF4444;color:#fff;padding:30px;text-align:center;border-radius:10px 10px 0 0;">
      <h1 style="margin:0;">New Contact Form Submission</h1>
    </div>
    <div style="background:#f9fafb;padding:30px;border-radius:0 0 10px 10px;">
      <p><strong>From:</strong> {{.Name}}</p>
      <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
      <p><strong>Phone:</strong> {{.Phone}}</p>
      {{if .PropertyTitle}}<p><strong>Property:</strong> {{.PropertyTitle}}{{if .PropertyID}} (ID: {{.PropertyID}}){{end}}</p>{{end}}
      <p><strong>Message:</strong></p>
      <div style="background:#fff;padding:20px;border-left:4px solid #F97316;">{{.MessageHTML}}</div>
    </div>` + layoutFoot))

var autoReplyTmpl = template.Must(template.New("autoreply").Parse(layoutHead + `
    <div style="background:#EF4444;color:#fff;padding:30px;text-align:center;border-radius:10px 10px 0 0;">
      <h1 style="margin:0;">Thank You for Contacting Us</h1>
    </div>
    <div style="background:#f9fafb;padding:30px;border-radius:0 0 10px 10px;">
      <p>Hi {{.Name}},</p>
      <p>Thank you for reaching out to {{.SiteName}}. We received your message and will get back to you within 24 hours.</p>
    </div>` + layoutFoot))

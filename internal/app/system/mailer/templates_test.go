package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestBuildAppointmentConfirmation(t *testing.T) {
	e := BuildAppointmentConfirmation(AppointmentEmailData{
		SiteName:        "EstateHub",
		ClientName:      "Ada",
		PropertyTitle:   "Lekki Villa",
		AppointmentDate: time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "10:00",
		AgentName:       "Bola",
		AgentPhone:      "+2348000000000",
	})

	if e.Subject != "Appointment Confirmation - Lekki Villa" {
		t.Errorf("Subject = %q", e.Subject)
	}
	for _, want := range []string{"Ada", "Lekki Villa", "Monday, March 4, 2030", "10:00", "Bola"} {
		if !strings.Contains(e.HTMLBody, want) {
			t.Errorf("HTML body missing %q", want)
		}
		if !strings.Contains(e.TextBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestBuildContactNotification_EscapesMessage(t *testing.T) {
	e := BuildContactNotification(ContactEmailData{
		SiteName: "EstateHub",
		Name:     "Eve",
		Email:    "eve@example.com",
		Phone:    "+1 555 0100",
		Message:  "Hello\n<script>alert(1)</script>",
	})

	if e.Subject != "New Contact Form Submission from Eve" {
		t.Errorf("Subject = %q", e.Subject)
	}
	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("script tag leaked into HTML body")
	}
	if !strings.Contains(e.HTMLBody, "Hello<br>") {
		t.Error("line break not preserved")
	}
}

func TestBuildContactAutoReply(t *testing.T) {
	e := BuildContactAutoReply("EstateHub", "Eve")
	if e.Subject != "Thank you for contacting EstateHub" {
		t.Errorf("Subject = %q", e.Subject)
	}
	if !strings.Contains(e.HTMLBody, "Hi Eve") {
		t.Error("greeting missing")
	}
}

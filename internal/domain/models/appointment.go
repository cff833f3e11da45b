// internal/domain/models/appointment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentType is the purpose of a visit.
type AppointmentType string

const (
	AppointmentViewing      AppointmentType = "viewing"
	AppointmentConsultation AppointmentType = "consultation"
	AppointmentInspection   AppointmentType = "inspection"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentViewing, AppointmentConsultation, AppointmentInspection:
		return true
	}
	return false
}

// AppointmentStatus is the workflow state of an appointment.
// Any status may move to any other; see IsTerminal.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether s normally ends the workflow.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCancelled || s == AppointmentCompleted
}

// ClientContact is a snapshot of how to reach the client, captured at booking.
type ClientContact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Appointment is a scheduled visit by a client to a property. AgentID is
// copied from the property at creation and never changes afterwards.
type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropertyID      primitive.ObjectID `bson:"property" json:"-"`
	ClientID        primitive.ObjectID `bson:"client" json:"-"`
	AgentID         primitive.ObjectID `bson:"agent" json:"-"`
	AppointmentDate time.Time          `bson:"appointment_date" json:"appointmentDate"`
	AppointmentTime string             `bson:"appointment_time" json:"appointmentTime"`
	Type            AppointmentType    `bson:"type" json:"type"`
	Status          AppointmentStatus  `bson:"status" json:"status"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ClientContact   ClientContact      `bson:"client_contact" json:"clientContact"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PropertyRef is the property summary embedded in appointment responses.
type PropertyRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Title    string             `bson:"title" json:"title,omitempty"`
	Location Location           `bson:"location" json:"location"`
	Images   []Image            `bson:"images,omitempty" json:"images,omitempty"`
	Price    float64            `bson:"price" json:"price,omitempty"`
}

// PersonRef is the user summary embedded in appointment responses.
type PersonRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name,omitempty"`
	Email string             `bson:"email" json:"email,omitempty"`
	Phone string             `bson:"phone,omitempty" json:"phone,omitempty"`
}

// AppointmentView is an appointment with its references populated.
type AppointmentView struct {
	Appointment
	Property PropertyRef `json:"property"`
	Client   PersonRef   `json:"client"`
	Agent    PersonRef   `json:"agent"`
}

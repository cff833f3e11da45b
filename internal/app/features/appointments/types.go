// internal/app/features/appointments/types.go
package appointments

type contactInput struct {
	Name  string `json:"name" validate:"required,max=100" label:"Contact name"`
	Email string `json:"email" validate:"required,email" label:"Contact email"`
	Phone string `json:"phone" validate:"required,max=20" label:"Contact phone"`
}

type createInput struct {
	Property        string       `json:"property" validate:"required,objectid" label:"Property ID"`
	AppointmentDate string       `json:"appointmentDate" validate:"required,isodate" label:"Appointment date"`
	AppointmentTime string       `json:"appointmentTime" validate:"required,max=20" label:"Appointment time"`
	Type            string       `json:"type" validate:"omitempty,apptype" label:"Appointment type"`
	Notes           string       `json:"notes" validate:"max=500" label:"Notes"`
	ClientContact   contactInput `json:"clientContact" label:"Contact"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,apptstatus" label:"Status"`
}

type appointmentEvent struct {
	AppointmentID string `json:"appointmentId"`
	PropertyID    string `json:"propertyId"`
	ClientID      string `json:"clientId"`
	AgentID       string `json:"agentId"`
	Status        string `json:"status"`
	PrevStatus    string `json:"prevStatus,omitempty"`
}

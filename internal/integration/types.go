package integration

import (
	"time"

	"github.com/google/uuid"
)

// UserIdentity is the identity record served by the user service.
type UserIdentity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

// Appointment is the appointment detail served by the appointment service.
type Appointment struct {
	ID               uuid.UUID `json:"id"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	Status           string    `json:"status"`
	PractitionerName string    `json:"practitioner_name"`
	Location         string    `json:"location"`
}

// Address is the postal address served by the address service.
type Address struct {
	ID         uuid.UUID `json:"id"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
}

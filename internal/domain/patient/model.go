package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient lifecycle statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

// Patient maps to the patients table. It is the root of all sub-records;
// every sub-record references it by identifier.
type Patient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	AddressID   *uuid.UUID `db:"address_id" json:"address_id,omitempty"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender      *string    `db:"gender" json:"gender,omitempty"`
	BloodGroup  *string    `db:"blood_group" json:"blood_group,omitempty"`
	HeightCM    *float64   `db:"height_cm" json:"height_cm,omitempty"`
	WeightKG    *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Visible reports whether the patient should be returned to callers.
// Inactive and deleted patients are only visible when includeInactive is set.
func (p *Patient) Visible(includeInactive bool) bool {
	if p.Status == StatusActive {
		return true
	}
	return includeInactive && p.Status != StatusDeleted
}

// Allergy maps to the allergies table.
type Allergy struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Allergen   string    `db:"allergen" json:"allergen"`
	Reaction   string    `db:"reaction" json:"reaction"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// Medication maps to the medications table.
type Medication struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	Name      string     `db:"name" json:"name"`
	Dosage    string     `db:"dosage" json:"dosage"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// ActiveAt reports whether the medication is active on the given day:
// the end date is absent or not before it. End dates carry date
// granularity, so the comparison truncates now to midnight first.
func (m *Medication) ActiveAt(now time.Time) bool {
	if m.EndDate == nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !m.EndDate.Before(today)
}

// MedicalHistoryEntry maps to the medical_history table.
type MedicalHistoryEntry struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Condition  string    `db:"condition" json:"condition"`
	Notes      string    `db:"notes" json:"notes"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// EmergencyContact maps to the emergency_contacts table.
type EmergencyContact struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	Name         string    `db:"name" json:"name"`
	Relationship string    `db:"relationship" json:"relationship"`
	Phone        string    `db:"phone" json:"phone"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// InsurancePolicy maps to the insurance_policies table.
type InsurancePolicy struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	Provider        string    `db:"provider" json:"provider"`
	PolicyNumber    string    `db:"policy_number" json:"policy_number"`
	CoverageDetails string    `db:"coverage_details" json:"coverage_details"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// AppointmentLink maps to the appointment_links table. The appointment
// detail itself lives in the appointment service and is resolved through its
// client.
type AppointmentLink struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

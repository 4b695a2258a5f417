package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

// Transport shapes are kept apart from the storage records so the
// aggregation logic never deals with raw request payloads. Conversions are
// plain functions and are tested on their own.

const dateLayout = "2006-01-02"

// PatientSummary is the compact patient view embedded in every derived
// response.
type PatientSummary struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	Age         *int      `json:"age,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	BloodGroup  *string   `json:"blood_group,omitempty"`
	HeightCM    *float64  `json:"height_cm,omitempty"`
	WeightKG    *float64  `json:"weight_kg,omitempty"`
	Status      string    `json:"status"`
}

// ToSummary converts a stored patient into its transport summary. Age is
// derived from the date of birth at the given instant.
func ToSummary(p *Patient, now time.Time) PatientSummary {
	s := PatientSummary{
		ID:         p.ID,
		UserID:     p.UserID,
		Gender:     p.Gender,
		BloodGroup: p.BloodGroup,
		HeightCM:   p.HeightCM,
		WeightKG:   p.WeightKG,
		Status:     p.Status,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Format(dateLayout)
		s.DateOfBirth = &dob
		age := ageAt(*p.DateOfBirth, now)
		s.Age = &age
	}
	return s
}

func ageAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// CreatePatientRequest is the write payload for the patient root record.
type CreatePatientRequest struct {
	UserID      uuid.UUID  `json:"user_id"`
	AddressID   *uuid.UUID `json:"address_id"`
	DateOfBirth *string    `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	BloodGroup  *string    `json:"blood_group"`
	HeightCM    *float64   `json:"height_cm"`
	WeightKG    *float64   `json:"weight_kg"`
}

// ToModel converts the request into a storage record, parsing the date of
// birth if present.
func (r *CreatePatientRequest) ToModel() (*Patient, error) {
	p := &Patient{
		UserID:     r.UserID,
		AddressID:  r.AddressID,
		Gender:     r.Gender,
		BloodGroup: r.BloodGroup,
		HeightCM:   r.HeightCM,
		WeightKG:   r.WeightKG,
		Status:     StatusActive,
	}
	if r.DateOfBirth != nil && *r.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, *r.DateOfBirth)
		if err != nil {
			return nil, apperr.Invalid("invalid date_of_birth %q: expected YYYY-MM-DD", *r.DateOfBirth)
		}
		p.DateOfBirth = &dob
	}
	return p, nil
}

// CreateMedicationRequest is the write payload for a medication sub-record.
type CreateMedicationRequest struct {
	Name      string  `json:"name"`
	Dosage    string  `json:"dosage"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (r *CreateMedicationRequest) ToModel(patientID uuid.UUID) (*Medication, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return nil, apperr.Invalid("invalid start_date %q: expected YYYY-MM-DD", r.StartDate)
	}
	m := &Medication{
		PatientID: patientID,
		Name:      r.Name,
		Dosage:    r.Dosage,
		StartDate: start,
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, err := time.Parse(dateLayout, *r.EndDate)
		if err != nil {
			return nil, apperr.Invalid("invalid end_date %q: expected YYYY-MM-DD", *r.EndDate)
		}
		m.EndDate = &end
	}
	return m, nil
}

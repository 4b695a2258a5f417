package patient

import (
	"context"

	"github.com/google/uuid"
)

// PatientRepository is the record source for patient root records.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}

// Sub-record repositories. Every list operation returns the patient's full
// collection in insertion order; an empty collection is an empty slice,
// never an error.

type AllergyRepository interface {
	Create(ctx context.Context, a *Allergy) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Allergy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MedicalHistoryRepository interface {
	Create(ctx context.Context, e *MedicalHistoryEntry) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MedicalHistoryEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EmergencyContactRepository interface {
	Create(ctx context.Context, ec *EmergencyContact) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*EmergencyContact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InsurancePolicyRepository interface {
	Create(ctx context.Context, ip *InsurancePolicy) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*InsurancePolicy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AppointmentLinkRepository interface {
	Create(ctx context.Context, al *AppointmentLink) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentLink, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

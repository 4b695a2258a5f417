package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

// Service owns the write-path glue for patient records and their
// sub-record collections. Every sub-record create verifies the owning
// patient first so a dangling reference can never be stored.
type Service struct {
	patients     PatientRepository
	allergies    AllergyRepository
	medications  MedicationRepository
	history      MedicalHistoryRepository
	contacts     EmergencyContactRepository
	insurance    InsurancePolicyRepository
	appointments AppointmentLinkRepository
}

func NewService(
	patients PatientRepository,
	allergies AllergyRepository,
	medications MedicationRepository,
	history MedicalHistoryRepository,
	contacts EmergencyContactRepository,
	insurance InsurancePolicyRepository,
	appointments AppointmentLinkRepository,
) *Service {
	return &Service{
		patients:     patients,
		allergies:    allergies,
		medications:  medications,
		history:      history,
		contacts:     contacts,
		insurance:    insurance,
		appointments: appointments,
	}
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, req *CreatePatientRequest) (*Patient, error) {
	if req.UserID == uuid.Nil {
		return nil, apperr.Invalid("user_id is required")
	}
	p, err := req.ToModel()
	if err != nil {
		return nil, err
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPatient returns the patient root record. Inactive patients are only
// visible when includeInactive is set; deleted patients never are.
func (s *Service) GetPatient(ctx context.Context, id uuid.UUID, includeInactive bool) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Visible(includeInactive) {
		return nil, apperr.NotFound("patient", id.String())
	}
	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *CreatePatientRequest) (*Patient, error) {
	existing, err := s.GetPatient(ctx, id, true)
	if err != nil {
		return nil, err
	}
	updated, err := req.ToModel()
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.Status = existing.Status
	if err := s.patients.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) SetPatientStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case StatusActive, StatusInactive, StatusDeleted:
	default:
		return apperr.Invalid("invalid status: %s", status)
	}
	return s.patients.SetStatus(ctx, id, status)
}

// DeletePatient soft-deletes; the row and its sub-records stay for audit.
func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.SetStatus(ctx, id, StatusDeleted)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// requirePatient enforces the owning-patient invariant on sub-record writes.
func (s *Service) requirePatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := s.GetPatient(ctx, patientID, true)
	return err
}

// -- Allergies --

func (s *Service) AddAllergy(ctx context.Context, a *Allergy) error {
	if a.Allergen == "" {
		return apperr.Invalid("allergen is required")
	}
	if err := s.requirePatient(ctx, a.PatientID); err != nil {
		return err
	}
	return s.allergies.Create(ctx, a)
}

func (s *Service) ListAllergies(ctx context.Context, patientID uuid.UUID) ([]*Allergy, error) {
	return s.allergies.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteAllergy(ctx context.Context, id uuid.UUID) error {
	return s.allergies.Delete(ctx, id)
}

// -- Medications --

func (s *Service) AddMedication(ctx context.Context, patientID uuid.UUID, req *CreateMedicationRequest) (*Medication, error) {
	if req.Name == "" {
		return nil, apperr.Invalid("name is required")
	}
	m, err := req.ToModel(patientID)
	if err != nil {
		return nil, err
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return nil, apperr.Invalid("end_date precedes start_date")
	}
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	if err := s.medications.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMedications(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	return s.medications.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return s.medications.Delete(ctx, id)
}

// -- Medical history --

func (s *Service) AddMedicalHistory(ctx context.Context, e *MedicalHistoryEntry) error {
	if e.Condition == "" {
		return apperr.Invalid("condition is required")
	}
	if err := s.requirePatient(ctx, e.PatientID); err != nil {
		return err
	}
	return s.history.Create(ctx, e)
}

func (s *Service) ListMedicalHistory(ctx context.Context, patientID uuid.UUID) ([]*MedicalHistoryEntry, error) {
	return s.history.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteMedicalHistory(ctx context.Context, id uuid.UUID) error {
	return s.history.Delete(ctx, id)
}

// -- Emergency contacts --

func (s *Service) AddEmergencyContact(ctx context.Context, ec *EmergencyContact) error {
	if ec.Name == "" || ec.Phone == "" {
		return apperr.Invalid("name and phone are required")
	}
	if err := s.requirePatient(ctx, ec.PatientID); err != nil {
		return err
	}
	return s.contacts.Create(ctx, ec)
}

func (s *Service) ListEmergencyContacts(ctx context.Context, patientID uuid.UUID) ([]*EmergencyContact, error) {
	return s.contacts.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteEmergencyContact(ctx context.Context, id uuid.UUID) error {
	return s.contacts.Delete(ctx, id)
}

// -- Insurance --

func (s *Service) AddInsurancePolicy(ctx context.Context, ip *InsurancePolicy) error {
	if ip.Provider == "" || ip.PolicyNumber == "" {
		return apperr.Invalid("provider and policy_number are required")
	}
	if err := s.requirePatient(ctx, ip.PatientID); err != nil {
		return err
	}
	return s.insurance.Create(ctx, ip)
}

func (s *Service) ListInsurancePolicies(ctx context.Context, patientID uuid.UUID) ([]*InsurancePolicy, error) {
	return s.insurance.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteInsurancePolicy(ctx context.Context, id uuid.UUID) error {
	return s.insurance.Delete(ctx, id)
}

// -- Appointment links --

func (s *Service) AddAppointmentLink(ctx context.Context, al *AppointmentLink) error {
	if al.AppointmentID == uuid.Nil {
		return apperr.Invalid("appointment_id is required")
	}
	if err := s.requirePatient(ctx, al.PatientID); err != nil {
		return err
	}
	return s.appointments.Create(ctx, al)
}

func (s *Service) ListAppointmentLinks(ctx context.Context, patientID uuid.UUID) ([]*AppointmentLink, error) {
	return s.appointments.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteAppointmentLink(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

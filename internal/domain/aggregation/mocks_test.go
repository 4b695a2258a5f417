package aggregation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tiny-steps/patient-service-sub001/internal/config"
	"github.com/tiny-steps/patient-service-sub001/internal/domain/patient"
	"github.com/tiny-steps/patient-service-sub001/internal/integration"
	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

// fixture is an in-memory record source plus a stub resolver, wired into a
// Service with the default rules.
type fixture struct {
	patient      *patient.Patient
	allergies    []*patient.Allergy
	medications  []*patient.Medication
	history      []*patient.MedicalHistoryEntry
	contacts     []*patient.EmergencyContact
	insurance    []*patient.InsurancePolicy
	links        []*patient.AppointmentLink
	appointments map[uuid.UUID]*integration.Appointment

	// set to force failures
	medicationsErr error
	identityErr    error
	addressErr     error
	appointmentErr error
}

func newFixture() *fixture {
	return &fixture{
		patient: &patient.Patient{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Status: patient.StatusActive,
		},
		appointments: make(map[uuid.UUID]*integration.Appointment),
	}
}

func (f *fixture) service() *Service {
	return f.serviceWithRules(config.DefaultClinicalRules())
}

func (f *fixture) serviceWithRules(rules config.ClinicalRules) *Service {
	return NewService(
		stubPatientRepo{f}, stubAllergyRepo{f}, stubMedicationRepo{f},
		stubHistoryRepo{f}, stubContactRepo{f}, stubInsuranceRepo{f},
		stubLinkRepo{f}, stubResolver{f}, rules, zerolog.Nop(),
	)
}

func (f *fixture) addLink(scheduledAt time.Time) *integration.Appointment {
	id := uuid.New()
	appt := &integration.Appointment{ID: id, ScheduledAt: scheduledAt, Status: "booked"}
	f.links = append(f.links, &patient.AppointmentLink{
		ID: uuid.New(), PatientID: f.patient.ID, AppointmentID: id,
	})
	f.appointments[id] = appt
	return appt
}

type stubPatientRepo struct{ f *fixture }

func (s stubPatientRepo) Create(context.Context, *patient.Patient) error { return nil }
func (s stubPatientRepo) Update(context.Context, *patient.Patient) error { return nil }
func (s stubPatientRepo) SetStatus(context.Context, uuid.UUID, string) error {
	return nil
}
func (s stubPatientRepo) List(context.Context, int, int) ([]*patient.Patient, int, error) {
	return nil, 0, nil
}
func (s stubPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	if s.f.patient == nil || s.f.patient.ID != id {
		return nil, apperr.NotFound("patient", id.String())
	}
	return s.f.patient, nil
}

type stubAllergyRepo struct{ f *fixture }

func (s stubAllergyRepo) Create(context.Context, *patient.Allergy) error { return nil }
func (s stubAllergyRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (s stubAllergyRepo) ListByPatient(context.Context, uuid.UUID) ([]*patient.Allergy, error) {
	return append([]*patient.Allergy{}, s.f.allergies...), nil
}

type stubMedicationRepo struct{ f *fixture }

func (s stubMedicationRepo) Create(context.Context, *patient.Medication) error { return nil }
func (s stubMedicationRepo) Delete(context.Context, uuid.UUID) error           { return nil }
func (s stubMedicationRepo) ListByPatient(context.Context, uuid.UUID) ([]*patient.Medication, error) {
	if s.f.medicationsErr != nil {
		return nil, apperr.Integration("medications", s.f.medicationsErr)
	}
	return append([]*patient.Medication{}, s.f.medications...), nil
}

type stubHistoryRepo struct{ f *fixture }

func (s stubHistoryRepo) Create(context.Context, *patient.MedicalHistoryEntry) error { return nil }
func (s stubHistoryRepo) Delete(context.Context, uuid.UUID) error                    { return nil }
func (s stubHistoryRepo) ListByPatient(context.Context, uuid.UUID) ([]*patient.MedicalHistoryEntry, error) {
	return append([]*patient.MedicalHistoryEntry{}, s.f.history...), nil
}

type stubContactRepo struct{ f *fixture }

func (s stubContactRepo) Create(context.Context, *patient.EmergencyContact) error { return nil }
func (s stubContactRepo) Delete(context.Context, uuid.UUID) error                 { return nil }
func (s stubContactRepo) ListByPatient(context.Context, uuid.UUID) ([]*patient.EmergencyContact, error) {
	return append([]*patient.EmergencyContact{}, s.f.contacts...), nil
}

type stubInsuranceRepo struct{ f *fixture }

func (s stubInsuranceRepo) Create(context.Context, *patient.InsurancePolicy) error { return nil }
func (s stubInsuranceRepo) Delete(context.Context, uuid.UUID) error                { return nil }
func (s stubInsuranceRepo) ListByPatient(context.Context, uuid.UUID) ([]*patient.InsurancePolicy, error) {
	return append([]*patient.InsurancePolicy{}, s.f.insurance...), nil
}

type stubLinkRepo struct{ f *fixture }

func (s stubLinkRepo) Create(context.Context, *patient.AppointmentLink) error { return nil }
func (s stubLinkRepo) Delete(context.Context, uuid.UUID) error                { return nil }
func (s stubLinkRepo) ListByPatient(context.Context, uuid.UUID) ([]*patient.AppointmentLink, error) {
	return append([]*patient.AppointmentLink{}, s.f.links...), nil
}

type stubResolver struct{ f *fixture }

func (s stubResolver) ResolveIdentity(_ context.Context, userID uuid.UUID) (*integration.UserIdentity, error) {
	if s.f.identityErr != nil {
		return nil, apperr.Integration("user-service", s.f.identityErr)
	}
	return &integration.UserIdentity{ID: userID, Name: "Test User"}, nil
}

func (s stubResolver) ResolveAppointment(_ context.Context, id uuid.UUID) (*integration.Appointment, error) {
	if s.f.appointmentErr != nil {
		return nil, apperr.Integration("appointment-service", s.f.appointmentErr)
	}
	appt, ok := s.f.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment", id.String())
	}
	return appt, nil
}

func (s stubResolver) ResolveAddress(_ context.Context, id uuid.UUID) (*integration.Address, error) {
	if s.f.addressErr != nil {
		return nil, apperr.Integration("address-service", s.f.addressErr)
	}
	return &integration.Address{ID: id, City: "Testville"}, nil
}

var errUpstream = errors.New("connection refused")

package aggregation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tiny-steps/patient-service-sub001/internal/config"
	"github.com/tiny-steps/patient-service-sub001/internal/domain/patient"
	"github.com/tiny-steps/patient-service-sub001/internal/integration"
	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

// Service assembles per-patient working sets and projects them into the
// derived views. All operations are read-only; any number may run
// concurrently against the same patient.
type Service struct {
	patients     patient.PatientRepository
	allergies    patient.AllergyRepository
	medications  patient.MedicationRepository
	history      patient.MedicalHistoryRepository
	contacts     patient.EmergencyContactRepository
	insurance    patient.InsurancePolicyRepository
	appointments patient.AppointmentLinkRepository

	resolver integration.Resolver
	rules    config.ClinicalRules
	log      zerolog.Logger
}

func NewService(
	patients patient.PatientRepository,
	allergies patient.AllergyRepository,
	medications patient.MedicationRepository,
	history patient.MedicalHistoryRepository,
	contacts patient.EmergencyContactRepository,
	insurance patient.InsurancePolicyRepository,
	appointments patient.AppointmentLinkRepository,
	resolver integration.Resolver,
	rules config.ClinicalRules,
	log zerolog.Logger,
) *Service {
	return &Service{
		patients:     patients,
		allergies:    allergies,
		medications:  medications,
		history:      history,
		contacts:     contacts,
		insurance:    insurance,
		appointments: appointments,
		resolver:     resolver,
		rules:        rules,
		log:          log,
	}
}

// BuildWorkingSet fetches the patient root and, concurrently, every
// sub-record collection and collaborator record. The root and the
// sub-record collections are authoritative: any failure there aborts the
// call. Collaborator failures degrade to absent fields.
func (s *Service) BuildWorkingSet(ctx context.Context, patientID uuid.UUID, includeInactive bool) (*WorkingSet, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !p.Visible(includeInactive) {
		return nil, apperr.NotFound("patient", patientID.String())
	}

	ws := &WorkingSet{Patient: p, FetchedAt: time.Now()}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fatal error
	)
	fail := func(err error) {
		mu.Lock()
		if fatal == nil {
			fatal = err
		}
		mu.Unlock()
	}

	var links []*patient.AppointmentLink

	wg.Add(6)
	go func() {
		defer wg.Done()
		items, err := s.allergies.ListByPatient(ctx, patientID)
		if err != nil {
			fail(err)
			return
		}
		ws.Allergies = items
	}()
	go func() {
		defer wg.Done()
		items, err := s.medications.ListByPatient(ctx, patientID)
		if err != nil {
			fail(err)
			return
		}
		ws.Medications = items
	}()
	go func() {
		defer wg.Done()
		items, err := s.history.ListByPatient(ctx, patientID)
		if err != nil {
			fail(err)
			return
		}
		ws.History = items
	}()
	go func() {
		defer wg.Done()
		items, err := s.contacts.ListByPatient(ctx, patientID)
		if err != nil {
			fail(err)
			return
		}
		ws.Contacts = items
	}()
	go func() {
		defer wg.Done()
		items, err := s.insurance.ListByPatient(ctx, patientID)
		if err != nil {
			fail(err)
			return
		}
		ws.Insurance = items
	}()
	go func() {
		defer wg.Done()
		items, err := s.appointments.ListByPatient(ctx, patientID)
		if err != nil {
			fail(err)
			return
		}
		links = items
	}()

	// Collaborators resolve in the same wave; their failures only log.
	wg.Add(1)
	go func() {
		defer wg.Done()
		identity, err := s.resolver.ResolveIdentity(ctx, p.UserID)
		if err != nil {
			s.log.Warn().Err(err).Str("patient_id", patientID.String()).
				Msg("identity resolution degraded")
			return
		}
		ws.Identity = identity
	}()
	if p.AddressID != nil {
		addressID := *p.AddressID
		wg.Add(1)
		go func() {
			defer wg.Done()
			address, err := s.resolver.ResolveAddress(ctx, addressID)
			if err != nil {
				s.log.Warn().Err(err).Str("patient_id", patientID.String()).
					Msg("address resolution degraded")
				return
			}
			ws.Address = address
		}()
	}

	wg.Wait()
	if fatal != nil {
		return nil, fatal
	}

	// Appointment details need the links, so they resolve in a second wave.
	ws.Appointments = make([]ResolvedAppointment, len(links))
	for i, link := range links {
		wg.Add(1)
		go func(i int, link *patient.AppointmentLink) {
			defer wg.Done()
			detail, err := s.resolver.ResolveAppointment(ctx, link.AppointmentID)
			if err != nil {
				s.log.Warn().Err(err).
					Str("appointment_id", link.AppointmentID.String()).
					Msg("appointment resolution degraded")
				detail = nil
			}
			ws.Appointments[i] = ResolvedAppointment{Link: link, Detail: detail}
		}(i, link)
	}
	wg.Wait()

	return ws, nil
}

// -- Derived views --

func (s *Service) HealthSummary(ctx context.Context, patientID uuid.UUID) (*HealthSummary, error) {
	ws, err := s.BuildWorkingSet(ctx, patientID, false)
	if err != nil {
		return nil, err
	}
	return buildHealthSummary(ws, time.Now()), nil
}

func (s *Service) RiskAssessment(ctx context.Context, patientID uuid.UUID) (*RiskAssessment, error) {
	ws, err := s.BuildWorkingSet(ctx, patientID, false)
	if err != nil {
		return nil, err
	}
	return computeRiskAssessment(ws, s.rules, time.Now()), nil
}

func (s *Service) SafetyAlerts(ctx context.Context, patientID uuid.UUID) (*SafetyAlerts, error) {
	ws, err := s.BuildWorkingSet(ctx, patientID, false)
	if err != nil {
		return nil, err
	}
	return computeSafetyAlerts(ws, s.rules, time.Now()), nil
}

func (s *Service) MedicationSafety(ctx context.Context, patientID uuid.UUID, medicationName string) (*MedicationSafetyResult, error) {
	if strings.TrimSpace(medicationName) == "" {
		return nil, apperr.Invalid("medication name is required")
	}
	ws, err := s.BuildWorkingSet(ctx, patientID, false)
	if err != nil {
		return nil, err
	}
	return checkMedicationSafety(ws, s.rules, medicationName, time.Now())
}

func (s *Service) Timeline(ctx context.Context, patientID uuid.UUID, daysBack int) (*Timeline, error) {
	ws, err := s.BuildWorkingSet(ctx, patientID, false)
	if err != nil {
		return nil, err
	}
	return buildTimeline(ws, daysBack, time.Now()), nil
}

func (s *Service) Dashboard(ctx context.Context, patientID uuid.UUID) (*Dashboard, error) {
	ws, err := s.BuildWorkingSet(ctx, patientID, false)
	if err != nil {
		return nil, err
	}
	return buildDashboard(ws, s.rules, time.Now()), nil
}

func (s *Service) CarePlan(ctx context.Context, patientID uuid.UUID) (*CarePlan, error) {
	ws, err := s.BuildWorkingSet(ctx, patientID, false)
	if err != nil {
		return nil, err
	}
	return buildCarePlan(ws, s.rules, time.Now()), nil
}

func buildHealthSummary(ws *WorkingSet, now time.Time) *HealthSummary {
	appointments := []*integration.Appointment{}
	for _, ra := range ws.Appointments {
		if ra.Detail != nil {
			appointments = append(appointments, ra.Detail)
		}
	}
	return &HealthSummary{
		Patient:           patient.ToSummary(ws.Patient, now),
		Identity:          ws.Identity,
		Address:           ws.Address,
		Allergies:         emptyIfNil(ws.Allergies),
		ActiveMedications: ws.ActiveMedications(now),
		MedicalHistory:    emptyIfNil(ws.History),
		EmergencyContacts: emptyIfNil(ws.Contacts),
		InsurancePolicies: emptyIfNil(ws.Insurance),
		Appointments:      appointments,
		GeneratedAt:       ws.FetchedAt,
	}
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

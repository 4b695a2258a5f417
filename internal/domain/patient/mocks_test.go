package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

// =========== Mock Repositories ===========

type mockPatientRepo struct {
	store map[uuid.UUID]*Patient
	order []uuid.UUID
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{store: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = StatusActive
	}
	m.store[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, apperr.NotFound("patient", id.String())
	}
	return p, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.store[p.ID]; !ok {
		return apperr.NotFound("patient", p.ID.String())
	}
	m.store[p.ID] = p
	return nil
}

func (m *mockPatientRepo) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	p, ok := m.store[id]
	if !ok {
		return apperr.NotFound("patient", id.String())
	}
	p.Status = status
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, id := range m.order {
		if p := m.store[id]; p.Status != StatusDeleted {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

type mockAllergyRepo struct{ items []*Allergy }

func (m *mockAllergyRepo) Create(_ context.Context, a *Allergy) error {
	a.ID = uuid.New()
	m.items = append(m.items, a)
	return nil
}

func (m *mockAllergyRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Allergy, error) {
	result := []*Allergy{}
	for _, a := range m.items {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockAllergyRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, a := range m.items {
		if a.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockMedicationRepo struct{ items []*Medication }

func (m *mockMedicationRepo) Create(_ context.Context, med *Medication) error {
	med.ID = uuid.New()
	m.items = append(m.items, med)
	return nil
}

func (m *mockMedicationRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Medication, error) {
	result := []*Medication{}
	for _, med := range m.items {
		if med.PatientID == patientID {
			result = append(result, med)
		}
	}
	return result, nil
}

func (m *mockMedicationRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, med := range m.items {
		if med.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockHistoryRepo struct{ items []*MedicalHistoryEntry }

func (m *mockHistoryRepo) Create(_ context.Context, e *MedicalHistoryEntry) error {
	e.ID = uuid.New()
	m.items = append(m.items, e)
	return nil
}

func (m *mockHistoryRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*MedicalHistoryEntry, error) {
	result := []*MedicalHistoryEntry{}
	for _, e := range m.items {
		if e.PatientID == patientID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockHistoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, e := range m.items {
		if e.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockContactRepo struct{ items []*EmergencyContact }

func (m *mockContactRepo) Create(_ context.Context, ec *EmergencyContact) error {
	ec.ID = uuid.New()
	m.items = append(m.items, ec)
	return nil
}

func (m *mockContactRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*EmergencyContact, error) {
	result := []*EmergencyContact{}
	for _, ec := range m.items {
		if ec.PatientID == patientID {
			result = append(result, ec)
		}
	}
	return result, nil
}

func (m *mockContactRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, ec := range m.items {
		if ec.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockInsuranceRepo struct{ items []*InsurancePolicy }

func (m *mockInsuranceRepo) Create(_ context.Context, ip *InsurancePolicy) error {
	ip.ID = uuid.New()
	m.items = append(m.items, ip)
	return nil
}

func (m *mockInsuranceRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*InsurancePolicy, error) {
	result := []*InsurancePolicy{}
	for _, ip := range m.items {
		if ip.PatientID == patientID {
			result = append(result, ip)
		}
	}
	return result, nil
}

func (m *mockInsuranceRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, ip := range m.items {
		if ip.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockAppointmentLinkRepo struct{ items []*AppointmentLink }

func (m *mockAppointmentLinkRepo) Create(_ context.Context, al *AppointmentLink) error {
	al.ID = uuid.New()
	m.items = append(m.items, al)
	return nil
}

func (m *mockAppointmentLinkRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*AppointmentLink, error) {
	result := []*AppointmentLink{}
	for _, al := range m.items {
		if al.PatientID == patientID {
			result = append(result, al)
		}
	}
	return result, nil
}

func (m *mockAppointmentLinkRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, al := range m.items {
		if al.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestService() (*Service, *mockPatientRepo) {
	patients := newMockPatientRepo()
	svc := NewService(
		patients,
		&mockAllergyRepo{},
		&mockMedicationRepo{},
		&mockHistoryRepo{},
		&mockContactRepo{},
		&mockInsuranceRepo{},
		&mockAppointmentLinkRepo{},
	)
	return svc, patients
}

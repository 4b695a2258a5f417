package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

func strPtr(s string) *string { return &s }

func mustCreatePatient(t *testing.T, svc *Service) *Patient {
	t.Helper()
	p, err := svc.CreatePatient(context.Background(), &CreatePatientRequest{
		UserID:      uuid.New(),
		DateOfBirth: strPtr("1980-04-12"),
		Gender:      strPtr("female"),
	})
	if err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	return p
}

func TestCreatePatientRequiresUserID(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreatePatient(context.Background(), &CreatePatientRequest{})
	if !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid-argument error, got %v", err)
	}
}

func TestCreatePatientRejectsBadDate(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreatePatient(context.Background(), &CreatePatientRequest{
		UserID:      uuid.New(),
		DateOfBirth: strPtr("12/04/1980"),
	})
	if !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid-argument error, got %v", err)
	}
}

func TestGetPatientVisibility(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreatePatient(t, svc)

	if _, err := svc.GetPatient(context.Background(), p.ID, false); err != nil {
		t.Fatalf("active patient should be visible: %v", err)
	}

	if err := svc.SetPatientStatus(context.Background(), p.ID, StatusInactive); err != nil {
		t.Fatalf("SetPatientStatus: %v", err)
	}
	if _, err := svc.GetPatient(context.Background(), p.ID, false); !apperr.IsNotFound(err) {
		t.Fatalf("inactive patient should be hidden by default, got %v", err)
	}
	if _, err := svc.GetPatient(context.Background(), p.ID, true); err != nil {
		t.Fatalf("inactive patient should be visible with includeInactive: %v", err)
	}

	if err := svc.DeletePatient(context.Background(), p.ID); err != nil {
		t.Fatalf("DeletePatient: %v", err)
	}
	if _, err := svc.GetPatient(context.Background(), p.ID, true); !apperr.IsNotFound(err) {
		t.Fatalf("deleted patient should never be visible, got %v", err)
	}
}

func TestSetPatientStatusRejectsUnknown(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreatePatient(t, svc)
	if err := svc.SetPatientStatus(context.Background(), p.ID, "archived"); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid-argument error, got %v", err)
	}
}

func TestUpdatePatientPreservesIdentity(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreatePatient(t, svc)

	updated, err := svc.UpdatePatient(context.Background(), p.ID, &CreatePatientRequest{
		UserID:     uuid.New(), // must be ignored
		BloodGroup: strPtr("O+"),
	})
	if err != nil {
		t.Fatalf("UpdatePatient: %v", err)
	}
	if updated.UserID != p.UserID {
		t.Error("update must not reassign the owning user")
	}
	if updated.BloodGroup == nil || *updated.BloodGroup != "O+" {
		t.Error("blood group not applied")
	}
}

func TestSubRecordCreateRequiresPatient(t *testing.T) {
	svc, _ := newTestService()
	missing := uuid.New()

	err := svc.AddAllergy(context.Background(), &Allergy{PatientID: missing, Allergen: "Penicillin"})
	if !apperr.IsNotFound(err) {
		t.Fatalf("allergy for missing patient: expected not-found, got %v", err)
	}

	_, err = svc.AddMedication(context.Background(), missing, &CreateMedicationRequest{
		Name: "Aspirin", StartDate: "2026-01-01",
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("medication for missing patient: expected not-found, got %v", err)
	}

	err = svc.AddEmergencyContact(context.Background(), &EmergencyContact{
		PatientID: missing, Name: "Sam", Phone: "555-0100",
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("contact for missing patient: expected not-found, got %v", err)
	}
}

func TestAddMedicationValidation(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreatePatient(t, svc)

	if _, err := svc.AddMedication(context.Background(), p.ID, &CreateMedicationRequest{
		StartDate: "2026-01-01",
	}); !apperr.IsInvalid(err) {
		t.Fatalf("blank name: expected invalid-argument, got %v", err)
	}

	if _, err := svc.AddMedication(context.Background(), p.ID, &CreateMedicationRequest{
		Name: "Aspirin", StartDate: "2026-06-01", EndDate: strPtr("2026-01-01"),
	}); !apperr.IsInvalid(err) {
		t.Fatalf("end before start: expected invalid-argument, got %v", err)
	}

	m, err := svc.AddMedication(context.Background(), p.ID, &CreateMedicationRequest{
		Name: "Aspirin", Dosage: "100mg", StartDate: "2026-01-01",
	})
	if err != nil {
		t.Fatalf("AddMedication: %v", err)
	}
	if m.EndDate != nil {
		t.Error("open-ended medication should have nil end date")
	}
	if !m.ActiveAt(time.Now()) {
		t.Error("open-ended medication should be active")
	}
}

func TestSubRecordRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreatePatient(t, svc)
	ctx := context.Background()

	if err := svc.AddAllergy(ctx, &Allergy{PatientID: p.ID, Allergen: "Peanuts", Reaction: "hives"}); err != nil {
		t.Fatalf("AddAllergy: %v", err)
	}
	if err := svc.AddInsurancePolicy(ctx, &InsurancePolicy{
		PatientID: p.ID, Provider: "Acme Health", PolicyNumber: "AH-100",
	}); err != nil {
		t.Fatalf("AddInsurancePolicy: %v", err)
	}
	if err := svc.AddAppointmentLink(ctx, &AppointmentLink{
		PatientID: p.ID, AppointmentID: uuid.New(),
	}); err != nil {
		t.Fatalf("AddAppointmentLink: %v", err)
	}

	allergies, err := svc.ListAllergies(ctx, p.ID)
	if err != nil || len(allergies) != 1 {
		t.Fatalf("ListAllergies = %v, %v; want 1 item", allergies, err)
	}
	policies, _ := svc.ListInsurancePolicies(ctx, p.ID)
	if len(policies) != 1 {
		t.Fatalf("ListInsurancePolicies = %d items, want 1", len(policies))
	}
	links, _ := svc.ListAppointmentLinks(ctx, p.ID)
	if len(links) != 1 {
		t.Fatalf("ListAppointmentLinks = %d items, want 1", len(links))
	}

	if err := svc.DeleteAllergy(ctx, allergies[0].ID); err != nil {
		t.Fatalf("DeleteAllergy: %v", err)
	}
	allergies, _ = svc.ListAllergies(ctx, p.ID)
	if len(allergies) != 0 {
		t.Fatalf("allergy not deleted")
	}
}

func TestListByPatientEmptyIsSliceNotError(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreatePatient(t, svc)

	history, err := svc.ListMedicalHistory(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("ListMedicalHistory: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Fatalf("want empty slice, got %v", history)
	}
}

package aggregation

import (
	"testing"
	"time"

	"github.com/tiny-steps/patient-service-sub001/internal/config"
	"github.com/tiny-steps/patient-service-sub001/internal/domain/patient"
	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

func TestMedicationSafetyBlankName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := checkMedicationSafety(baseWorkingSet(), config.DefaultClinicalRules(), name, time.Now())
		if !apperr.IsInvalid(err) {
			t.Errorf("name %q: expected invalid-argument, got %v", name, err)
		}
	}
}

func TestMedicationSafetyCrossReactivity(t *testing.T) {
	ws := baseWorkingSet()
	ws.Allergies = []*patient.Allergy{{Allergen: "Penicillin", Reaction: "anaphylaxis"}}

	result, err := checkMedicationSafety(ws, config.DefaultClinicalRules(), "Amoxicillin", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !result.HasAllergyConflict {
		t.Error("Amoxicillin against a Penicillin allergy must conflict")
	}
	if result.IsSafeToAdd {
		t.Error("allergy conflict must make the medication unsafe")
	}
	if len(result.AllergyConflicts) != 1 || result.AllergyConflicts[0] != "Penicillin" {
		t.Errorf("allergy conflicts = %v", result.AllergyConflicts)
	}
}

func TestMedicationSafetyDirectAllergenMatch(t *testing.T) {
	ws := baseWorkingSet()
	ws.Allergies = []*patient.Allergy{{Allergen: "Aspirin", Reaction: "hives"}}

	result, err := checkMedicationSafety(ws, config.DefaultClinicalRules(), "aspirin", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !result.HasAllergyConflict {
		t.Error("case-insensitive direct allergen match must conflict")
	}
}

func TestMedicationSafetyInteractionIsSymmetric(t *testing.T) {
	rules := config.DefaultClinicalRules()
	now := time.Now()

	onWarfarin := baseWorkingSet()
	onWarfarin.Medications = []*patient.Medication{activeMedication("Warfarin")}
	r1, err := checkMedicationSafety(onWarfarin, rules, "Aspirin", now)
	if err != nil {
		t.Fatal(err)
	}

	onAspirin := baseWorkingSet()
	onAspirin.Medications = []*patient.Medication{activeMedication("Aspirin")}
	r2, err := checkMedicationSafety(onAspirin, rules, "Warfarin", now)
	if err != nil {
		t.Fatal(err)
	}

	if r1.HasConflicts != r2.HasConflicts || !r1.HasConflicts {
		t.Fatalf("interaction lookup not symmetric: %v vs %v", r1.HasConflicts, r2.HasConflicts)
	}
	if r1.IsSafeToAdd || r2.IsSafeToAdd {
		t.Error("interacting pair must be unsafe in both directions")
	}
}

func TestMedicationSafetyIgnoresInactiveMedications(t *testing.T) {
	ws := baseWorkingSet()
	ended := time.Now().AddDate(0, 0, -30)
	ws.Medications = []*patient.Medication{
		{Name: "Warfarin", StartDate: ended.AddDate(0, -6, 0), EndDate: &ended},
	}

	result, err := checkMedicationSafety(ws, config.DefaultClinicalRules(), "Aspirin", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if result.HasConflicts {
		t.Error("ended medications must not produce interactions")
	}
	if !result.IsSafeToAdd {
		t.Error("no active conflicts, medication should be safe")
	}
}

func TestMedicationSafetyNoRules(t *testing.T) {
	ws := baseWorkingSet()
	ws.Allergies = []*patient.Allergy{{Allergen: "Penicillin", Reaction: "anaphylaxis"}}
	ws.Medications = []*patient.Medication{activeMedication("Warfarin")}

	result, err := checkMedicationSafety(ws, config.ClinicalRules{}, "Ibuprofen", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if result.HasAllergyConflict || result.HasConflicts || !result.IsSafeToAdd {
		t.Errorf("empty rule tables should find nothing: %+v", result)
	}
}

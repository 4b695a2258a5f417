package aggregation

import (
	"strings"
	"time"

	"github.com/tiny-steps/patient-service-sub001/internal/config"
	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

// checkMedicationSafety evaluates one proposed medication against the
// patient's recorded allergens and active medications.
func checkMedicationSafety(ws *WorkingSet, rules config.ClinicalRules, medicationName string, now time.Time) (*MedicationSafetyResult, error) {
	name := strings.ToLower(strings.TrimSpace(medicationName))
	if name == "" {
		return nil, apperr.Invalid("medication name is required")
	}

	result := &MedicationSafetyResult{
		MedicationName:        medicationName,
		AllergyConflicts:      []string{},
		PotentialInteractions: []string{},
	}

	for _, a := range ws.Allergies {
		allergen := strings.ToLower(a.Allergen)
		if allergen == name || crossReactive(rules, allergen, name) {
			result.AllergyConflicts = append(result.AllergyConflicts, a.Allergen)
		}
	}
	result.HasAllergyConflict = len(result.AllergyConflicts) > 0

	for _, m := range ws.ActiveMedications(now) {
		if interacts(rules, name, strings.ToLower(m.Name)) {
			result.PotentialInteractions = append(result.PotentialInteractions, m.Name)
		}
	}
	result.HasConflicts = len(result.PotentialInteractions) > 0
	result.IsSafeToAdd = !result.HasConflicts && !result.HasAllergyConflict

	return result, nil
}

// crossReactive reports whether the medication belongs to the allergen's
// configured cross-reactive class.
func crossReactive(rules config.ClinicalRules, allergen, medication string) bool {
	for _, m := range rules.AllergyCrossReactivity[allergen] {
		if m == medication {
			return true
		}
	}
	return false
}

// interacts looks the pair up in the interaction table. The lookup is
// unordered: (a, b) and (b, a) are the same pair.
func interacts(rules config.ClinicalRules, a, b string) bool {
	for _, d := range rules.DrugInteractions {
		if (d.A == a && d.B == b) || (d.A == b && d.B == a) {
			return true
		}
	}
	return false
}

package aggregation

import (
	"strings"
	"time"

	"github.com/tiny-steps/patient-service-sub001/internal/config"
)

// Score weights. The keyword lists and thresholds they pair with come from
// the clinical rules file.
const (
	weightCriticalAllergy = 30
	weightChronic         = 20
	weightPolypharmacy    = 15
	weightNoContacts      = 10
	weightNoInsurance     = 10
)

// computeRiskAssessment scores the working set. It is a pure function of
// the snapshot, the rules, and the evaluation instant.
func computeRiskAssessment(ws *WorkingSet, rules config.ClinicalRules, now time.Time) *RiskAssessment {
	ra := &RiskAssessment{
		HasCriticalAllergies:     len(criticalAllergies(ws, rules)) > 0,
		HasChronicConditions:     len(chronicConditions(ws, rules)) > 0,
		Polypharmacy:             len(ws.ActiveMedications(now)) > rules.PolypharmacyThreshold,
		MissingEmergencyContacts: len(ws.Contacts) == 0,
		MissingInsurance:         len(ws.Insurance) == 0,
	}

	score := 0
	if ra.HasCriticalAllergies {
		score += weightCriticalAllergy
	}
	if ra.HasChronicConditions {
		score += weightChronic
	}
	if ra.Polypharmacy {
		score += weightPolypharmacy
	}
	if ra.MissingEmergencyContacts {
		score += weightNoContacts
	}
	if ra.MissingInsurance {
		score += weightNoInsurance
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	ra.RiskScore = score
	ra.RiskLevel = RiskLevelForScore(score)
	return ra
}

// criticalAllergies returns allergen names whose reaction text matches the
// critical keyword set, case-insensitively.
func criticalAllergies(ws *WorkingSet, rules config.ClinicalRules) []string {
	names := []string{}
	for _, a := range ws.Allergies {
		if matchesAny(a.Reaction, rules.CriticalReactionKeywords) {
			names = append(names, a.Allergen)
		}
	}
	return names
}

// chronicConditions returns condition texts matching the chronic keyword set.
func chronicConditions(ws *WorkingSet, rules config.ClinicalRules) []string {
	conditions := []string{}
	for _, e := range ws.History {
		if matchesAny(e.Condition, rules.ChronicConditionKeywords) {
			conditions = append(conditions, e.Condition)
		}
	}
	return conditions
}

// matchesAny reports whether text contains any of the keywords. Keywords
// are stored lowercased; the text is folded here.
func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

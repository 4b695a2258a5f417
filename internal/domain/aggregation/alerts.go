package aggregation

import (
	"time"

	"github.com/tiny-steps/patient-service-sub001/internal/config"
)

// computeSafetyAlerts derives the alert view from the working set.
func computeSafetyAlerts(ws *WorkingSet, rules config.ClinicalRules, now time.Time) *SafetyAlerts {
	critical := criticalAllergies(ws, rules)
	chronic := chronicConditions(ws, rules)
	expiring := expiringMedications(ws, rules, now)

	active := []string{}
	for _, m := range ws.ActiveMedications(now) {
		active = append(active, m.Name)
	}

	return &SafetyAlerts{
		MissingEmergencyContacts: len(ws.Contacts) == 0,
		MissingInsurance:         len(ws.Insurance) == 0,
		HasCriticalAllergies:     len(critical) > 0,
		CriticalAllergies:        critical,
		HasExpiringMedications:   len(expiring) > 0,
		ExpiringMedications:      expiring,
		HasChronicConditions:     len(chronic) > 0,
		ChronicConditions:        chronic,
		ActiveMedications:        active,
	}
}

// expiringMedications returns names of active medications whose end date
// falls within the configured horizon from now, inclusive.
func expiringMedications(ws *WorkingSet, rules config.ClinicalRules, now time.Time) []string {
	horizon := now.AddDate(0, 0, rules.ExpiringMedicationHorizonDays)
	names := []string{}
	for _, m := range ws.Medications {
		if !m.ActiveAt(now) || m.EndDate == nil {
			continue
		}
		if !m.EndDate.After(horizon) {
			names = append(names, m.Name)
		}
	}
	return names
}

package aggregation

import (
	"math"
	"time"

	"github.com/tiny-steps/patient-service-sub001/internal/config"
	"github.com/tiny-steps/patient-service-sub001/internal/domain/patient"
)

// profileSlots is the number of profile fields counted toward completeness:
// date of birth, gender, blood group, height, weight, at least one
// emergency contact, at least one insurance policy.
const profileSlots = 7

// buildDashboard combines the patient summary, profile completeness, and
// the key alert outputs into one view.
func buildDashboard(ws *WorkingSet, rules config.ClinicalRules, now time.Time) *Dashboard {
	alerts := computeSafetyAlerts(ws, rules, now)

	recent := ws.History
	if n := rules.RecentHistoryCount; n > 0 && len(recent) > n {
		recent = recent[len(recent)-n:]
	}
	if recent == nil {
		recent = []*patient.MedicalHistoryEntry{}
	}

	return &Dashboard{
		Patient:                  patient.ToSummary(ws.Patient, now),
		ProfileCompleteness:      profileCompleteness(ws),
		CriticalAllergies:        alerts.CriticalAllergies,
		ActiveMedications:        alerts.ActiveMedications,
		ExpiringMedications:      alerts.ExpiringMedications,
		EmergencyContacts:        emptyIfNil(ws.Contacts),
		RecentMedicalHistory:     recent,
		MissingEmergencyContacts: alerts.MissingEmergencyContacts,
		MissingInsurance:         alerts.MissingInsurance,
		HasCriticalAllergies:     alerts.HasCriticalAllergies,
	}
}

// profileCompleteness is the filled fraction of the profile slots, as a
// whole percentage rounded to nearest.
func profileCompleteness(ws *WorkingSet) int {
	p := ws.Patient
	present := 0
	if p.DateOfBirth != nil {
		present++
	}
	if p.Gender != nil && *p.Gender != "" {
		present++
	}
	if p.BloodGroup != nil && *p.BloodGroup != "" {
		present++
	}
	if p.HeightCM != nil {
		present++
	}
	if p.WeightKG != nil {
		present++
	}
	if len(ws.Contacts) > 0 {
		present++
	}
	if len(ws.Insurance) > 0 {
		present++
	}
	return int(math.Round(float64(present) / profileSlots * 100))
}

package aggregation

import (
	"sort"
	"time"

	"github.com/tiny-steps/patient-service-sub001/internal/config"
	"github.com/tiny-steps/patient-service-sub001/internal/domain/patient"
	"github.com/tiny-steps/patient-service-sub001/internal/integration"
)

// buildCarePlan assembles the forward-looking view: what the patient is on,
// what they live with, what to avoid, and what comes next.
func buildCarePlan(ws *WorkingSet, rules config.ClinicalRules, now time.Time) *CarePlan {
	active := []string{}
	for _, m := range ws.ActiveMedications(now) {
		active = append(active, m.Name)
	}

	return &CarePlan{
		Patient:              patient.ToSummary(ws.Patient, now),
		ActiveMedications:    active,
		ChronicConditions:    chronicConditions(ws, rules),
		CriticalAllergies:    criticalAllergies(ws, rules),
		UpcomingAppointments: upcomingAppointments(ws, rules, now),
	}
}

// upcomingAppointments returns resolved future appointments ascending by
// scheduled time, capped by the configured count.
func upcomingAppointments(ws *WorkingSet, rules config.ClinicalRules, now time.Time) []*integration.Appointment {
	upcoming := []*integration.Appointment{}
	for _, ra := range ws.Appointments {
		if ra.Detail != nil && ra.Detail.ScheduledAt.After(now) {
			upcoming = append(upcoming, ra.Detail)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledAt.Before(upcoming[j].ScheduledAt)
	})
	if limit := rules.UpcomingAppointmentCap; limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

package aggregation

import (
	"time"

	"github.com/tiny-steps/patient-service-sub001/internal/domain/patient"
	"github.com/tiny-steps/patient-service-sub001/internal/integration"
)

// Window starts saturate rather than wrap for absurdly large lookbacks.
// Anything past this many days resolves to the zero instant.
const maxTimelineDays = 146097 // 400 years

// buildTimeline projects the working set onto the window [now-daysBack, now].
// A non-positive daysBack yields empty collections.
func buildTimeline(ws *WorkingSet, daysBack int, now time.Time) *Timeline {
	tl := &Timeline{
		To:                now,
		MedicalHistory:    []*patient.MedicalHistoryEntry{},
		MedicationHistory: []*patient.Medication{},
		Appointments:      []*integration.Appointment{},
	}
	if daysBack <= 0 {
		tl.From = now
		return tl
	}

	var start time.Time
	if daysBack > maxTimelineDays {
		start = time.Time{}
	} else {
		start = now.AddDate(0, 0, -daysBack)
	}
	tl.From = start

	for _, e := range ws.History {
		if inWindow(e.RecordedAt, start, now) {
			tl.MedicalHistory = append(tl.MedicalHistory, e)
		}
	}

	// A medication belongs to the window when its active interval overlaps
	// it: started before the window closed and not ended before it opened.
	for _, m := range ws.Medications {
		if m.StartDate.After(now) {
			continue
		}
		if m.EndDate != nil && m.EndDate.Before(start) {
			continue
		}
		tl.MedicationHistory = append(tl.MedicationHistory, m)
	}

	for _, ra := range ws.Appointments {
		if ra.Detail != nil && inWindow(ra.Detail.ScheduledAt, start, now) {
			tl.Appointments = append(tl.Appointments, ra.Detail)
		}
	}

	return tl
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

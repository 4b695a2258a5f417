package aggregation

import (
	"time"

	"github.com/tiny-steps/patient-service-sub001/internal/domain/patient"
	"github.com/tiny-steps/patient-service-sub001/internal/integration"
)

// WorkingSet is the complete per-patient snapshot every derived view is
// computed from. It is assembled once per request and never persisted.
type WorkingSet struct {
	Patient      *patient.Patient
	Allergies    []*patient.Allergy
	Medications  []*patient.Medication
	History      []*patient.MedicalHistoryEntry
	Contacts     []*patient.EmergencyContact
	Insurance    []*patient.InsurancePolicy
	Appointments []ResolvedAppointment

	// Collaborator data. Nil when the collaborator could not be reached;
	// degradation is recorded in the log, not surfaced as an error.
	Identity *integration.UserIdentity
	Address  *integration.Address

	FetchedAt time.Time
}

// ResolvedAppointment pairs an appointment link with its detail from the
// appointment service. Detail is nil when resolution failed.
type ResolvedAppointment struct {
	Link   *patient.AppointmentLink
	Detail *integration.Appointment
}

// ActiveMedications returns the medications active at the given instant,
// in stored order.
func (ws *WorkingSet) ActiveMedications(now time.Time) []*patient.Medication {
	active := []*patient.Medication{}
	for _, m := range ws.Medications {
		if m.ActiveAt(now) {
			active = append(active, m)
		}
	}
	return active
}

// Risk levels, from the fixed score band table.
const (
	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// RiskLevelForScore maps a clamped score to its band. Band edges are
// inclusive on the lower side.
func RiskLevelForScore(score int) string {
	switch {
	case score <= 20:
		return RiskLow
	case score <= 50:
		return RiskModerate
	case score <= 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// RiskAssessment is the scored view with its individual contributors
// exposed for transparency.
type RiskAssessment struct {
	RiskScore int    `json:"risk_score"`
	RiskLevel string `json:"risk_level"`

	HasCriticalAllergies     bool `json:"has_critical_allergies"`
	HasChronicConditions     bool `json:"has_chronic_conditions"`
	Polypharmacy             bool `json:"polypharmacy"`
	MissingEmergencyContacts bool `json:"missing_emergency_contacts"`
	MissingInsurance         bool `json:"missing_insurance"`
}

// SafetyAlerts is the alert view derived from the working set.
type SafetyAlerts struct {
	MissingEmergencyContacts bool     `json:"missing_emergency_contacts"`
	MissingInsurance         bool     `json:"missing_insurance"`
	HasCriticalAllergies     bool     `json:"has_critical_allergies"`
	CriticalAllergies        []string `json:"critical_allergies"`
	HasExpiringMedications   bool     `json:"has_expiring_medications"`
	ExpiringMedications      []string `json:"expiring_medications"`
	HasChronicConditions     bool     `json:"has_chronic_conditions"`
	ChronicConditions        []string `json:"chronic_conditions"`
	ActiveMedications        []string `json:"active_medications"`
}

// MedicationSafetyResult is the outcome of evaluating one proposed
// medication against the patient's current state.
type MedicationSafetyResult struct {
	MedicationName        string   `json:"medication_name"`
	HasAllergyConflict    bool     `json:"has_allergy_conflict"`
	AllergyConflicts      []string `json:"allergy_conflicts"`
	HasConflicts          bool     `json:"has_conflicts"`
	PotentialInteractions []string `json:"potential_interactions"`
	IsSafeToAdd           bool     `json:"is_safe_to_add"`
}

// HealthSummary is the full synthesized view of one patient.
type HealthSummary struct {
	Patient           patient.PatientSummary         `json:"patient"`
	Identity          *integration.UserIdentity      `json:"identity,omitempty"`
	Address           *integration.Address           `json:"address,omitempty"`
	Allergies         []*patient.Allergy             `json:"allergies"`
	ActiveMedications []*patient.Medication          `json:"active_medications"`
	MedicalHistory    []*patient.MedicalHistoryEntry `json:"medical_history"`
	EmergencyContacts []*patient.EmergencyContact    `json:"emergency_contacts"`
	InsurancePolicies []*patient.InsurancePolicy     `json:"insurance_policies"`
	Appointments      []*integration.Appointment     `json:"appointments"`
	GeneratedAt       time.Time                      `json:"generated_at"`
}

// Timeline is the windowed historical view.
type Timeline struct {
	From              time.Time                      `json:"from"`
	To                time.Time                      `json:"to"`
	MedicalHistory    []*patient.MedicalHistoryEntry `json:"medical_history"`
	MedicationHistory []*patient.Medication          `json:"medication_history"`
	Appointments      []*integration.Appointment     `json:"appointments"`
}

// Dashboard is the at-a-glance view combining profile completeness with
// the key alert outputs.
type Dashboard struct {
	Patient                  patient.PatientSummary         `json:"patient"`
	ProfileCompleteness      int                            `json:"profile_completeness"`
	CriticalAllergies        []string                       `json:"critical_allergies"`
	ActiveMedications        []string                       `json:"active_medications"`
	ExpiringMedications      []string                       `json:"expiring_medications"`
	EmergencyContacts        []*patient.EmergencyContact    `json:"emergency_contacts"`
	RecentMedicalHistory     []*patient.MedicalHistoryEntry `json:"recent_medical_history"`
	MissingEmergencyContacts bool                           `json:"missing_emergency_contacts"`
	MissingInsurance         bool                           `json:"missing_insurance"`
	HasCriticalAllergies     bool                           `json:"has_critical_allergies"`
}

// CarePlan is the forward-looking view.
type CarePlan struct {
	Patient              patient.PatientSummary     `json:"patient"`
	ActiveMedications    []string                   `json:"active_medications"`
	ChronicConditions    []string                   `json:"chronic_conditions"`
	CriticalAllergies    []string                   `json:"critical_allergies"`
	UpcomingAppointments []*integration.Appointment `json:"upcoming_appointments"`
}

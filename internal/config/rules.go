package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DrugInteraction is an unordered pair of medication names known to interact.
type DrugInteraction struct {
	A        string `mapstructure:"a"`
	B        string `mapstructure:"b"`
	Severity string `mapstructure:"severity"`
}

// ClinicalRules carries the keyword sets, thresholds, and interaction tables
// that drive risk scoring, safety alerts, and medication conflict checks.
// They are data, not code: deployments override them via a YAML rules file.
type ClinicalRules struct {
	CriticalReactionKeywords      []string          `mapstructure:"critical_reaction_keywords"`
	ChronicConditionKeywords      []string          `mapstructure:"chronic_condition_keywords"`
	PolypharmacyThreshold         int               `mapstructure:"polypharmacy_threshold"`
	ExpiringMedicationHorizonDays int               `mapstructure:"expiring_medication_horizon_days"`
	RecentHistoryCount            int               `mapstructure:"recent_history_count"`
	UpcomingAppointmentCap        int               `mapstructure:"upcoming_appointment_cap"`
	DrugInteractions              []DrugInteraction `mapstructure:"drug_interactions"`
	// AllergyCrossReactivity maps an allergen name to the medication names
	// (cross-reactive class members) that conflict with it.
	AllergyCrossReactivity map[string][]string `mapstructure:"allergy_cross_reactivity"`
}

// DefaultClinicalRules returns the built-in rule set used when no rules file
// is configured.
func DefaultClinicalRules() ClinicalRules {
	return ClinicalRules{
		CriticalReactionKeywords: []string{
			"anaphylaxis", "critical", "life-threatening", "severe",
		},
		ChronicConditionKeywords: []string{
			"diabetes", "hypertension", "asthma", "chronic", "copd",
			"arthritis", "heart disease", "kidney disease",
		},
		PolypharmacyThreshold:         3,
		ExpiringMedicationHorizonDays: 7,
		RecentHistoryCount:            5,
		UpcomingAppointmentCap:        5,
		DrugInteractions: []DrugInteraction{
			{A: "warfarin", B: "aspirin", Severity: "major"},
			{A: "warfarin", B: "ibuprofen", Severity: "major"},
			{A: "lisinopril", B: "spironolactone", Severity: "moderate"},
			{A: "simvastatin", B: "clarithromycin", Severity: "major"},
			{A: "metformin", B: "contrast media", Severity: "moderate"},
		},
		AllergyCrossReactivity: map[string][]string{
			"penicillin":   {"amoxicillin", "ampicillin", "piperacillin"},
			"sulfa":        {"sulfamethoxazole", "sulfasalazine"},
			"aspirin":      {"ibuprofen", "naproxen", "ketorolac"},
			"cephalosporin": {"cefazolin", "ceftriaxone", "cephalexin"},
		},
	}
}

// LoadClinicalRules reads the rules file at path. An empty path returns the
// defaults. Fields omitted from the file keep their default values so a
// deployment can override a single list without restating the rest.
func LoadClinicalRules(path string) (ClinicalRules, error) {
	rules := DefaultClinicalRules()
	if path == "" {
		return rules, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return rules, fmt.Errorf("read clinical rules file %s: %w", path, err)
	}
	if err := v.Unmarshal(&rules); err != nil {
		return rules, fmt.Errorf("unmarshal clinical rules: %w", err)
	}

	rules.normalize()
	return rules, nil
}

// normalize lowercases every name-keyed rule so matching stays
// case-insensitive regardless of how the file was written.
func (r *ClinicalRules) normalize() {
	for i, k := range r.CriticalReactionKeywords {
		r.CriticalReactionKeywords[i] = strings.ToLower(k)
	}
	for i, k := range r.ChronicConditionKeywords {
		r.ChronicConditionKeywords[i] = strings.ToLower(k)
	}
	for i, d := range r.DrugInteractions {
		r.DrugInteractions[i].A = strings.ToLower(d.A)
		r.DrugInteractions[i].B = strings.ToLower(d.B)
	}
	if r.AllergyCrossReactivity != nil {
		normalized := make(map[string][]string, len(r.AllergyCrossReactivity))
		for allergen, meds := range r.AllergyCrossReactivity {
			lower := make([]string, len(meds))
			for i, m := range meds {
				lower[i] = strings.ToLower(m)
			}
			normalized[strings.ToLower(allergen)] = lower
		}
		r.AllergyCrossReactivity = normalized
	}
}

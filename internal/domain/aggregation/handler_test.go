package aggregation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tiny-steps/patient-service-sub001/internal/domain/patient"
	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

func newRequestContext(f *fixture, e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(f.patient.ID.String())
	return c, rec
}

func TestHandler_RiskAssessment(t *testing.T) {
	f := newFixture()
	f.allergies = append(f.allergies, &patient.Allergy{
		PatientID: f.patient.ID, Allergen: "Penicillin", Reaction: "anaphylaxis",
	})
	h := NewHandler(f.service())
	e := echo.New()

	c, rec := newRequestContext(f, e, http.MethodGet, "/", "")
	if err := h.RiskAssessment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var ra RiskAssessment
	if err := json.Unmarshal(rec.Body.Bytes(), &ra); err != nil {
		t.Fatal(err)
	}
	// Critical allergy + missing contacts + missing insurance.
	if ra.RiskScore != 50 || ra.RiskLevel != RiskModerate {
		t.Errorf("score = %d level = %s", ra.RiskScore, ra.RiskLevel)
	}
}

func TestHandler_MalformedPatientID(t *testing.T) {
	f := newFixture()
	h := NewHandler(f.service())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := h.Dashboard(c); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid-argument, got %v", err)
	}
}

func TestHandler_TimelineDaysParam(t *testing.T) {
	f := newFixture()
	f.history = append(f.history, &patient.MedicalHistoryEntry{
		PatientID: f.patient.ID, Condition: "checkup", RecordedAt: time.Now().AddDate(0, 0, -2),
	})
	h := NewHandler(f.service())
	e := echo.New()

	c, rec := newRequestContext(f, e, http.MethodGet, "/?days=7", "")
	if err := h.Timeline(c); err != nil {
		t.Fatal(err)
	}
	var tl Timeline
	if err := json.Unmarshal(rec.Body.Bytes(), &tl); err != nil {
		t.Fatal(err)
	}
	if len(tl.MedicalHistory) != 1 {
		t.Errorf("history = %d, want 1", len(tl.MedicalHistory))
	}

	c, _ = newRequestContext(f, e, http.MethodGet, "/?days=week", "")
	if err := h.Timeline(c); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid-argument for malformed days, got %v", err)
	}
}

func TestHandler_MedicationSafety(t *testing.T) {
	f := newFixture()
	f.allergies = append(f.allergies, &patient.Allergy{
		PatientID: f.patient.ID, Allergen: "Penicillin", Reaction: "anaphylaxis",
	})
	h := NewHandler(f.service())
	e := echo.New()

	c, rec := newRequestContext(f, e, http.MethodPost, "/", `{"medication_name":"Amoxicillin"}`)
	if err := h.MedicationSafety(c); err != nil {
		t.Fatal(err)
	}
	var result MedicationSafetyResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if !result.HasAllergyConflict || result.IsSafeToAdd {
		t.Errorf("unexpected result: %+v", result)
	}

	c, _ = newRequestContext(f, e, http.MethodPost, "/", `{"medication_name":""}`)
	if err := h.MedicationSafety(c); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid-argument for blank name, got %v", err)
	}
}

func TestHandler_SummaryNotFound(t *testing.T) {
	f := newFixture()
	h := NewHandler(f.service())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("00000000-0000-0000-0000-000000000001")

	if err := h.HealthSummary(c); !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

package aggregation

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/summary", h.HealthSummary)
	api.GET("/patients/:id/risk-assessment", h.RiskAssessment)
	api.GET("/patients/:id/safety-alerts", h.SafetyAlerts)
	api.GET("/patients/:id/dashboard", h.Dashboard)
	api.GET("/patients/:id/care-plan", h.CarePlan)
	api.GET("/patients/:id/timeline", h.Timeline)
	api.POST("/patients/:id/medication-safety-check", h.MedicationSafety)
}

func patientID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.Invalid("malformed patient id: %s", c.Param("id"))
	}
	return id, nil
}

func (h *Handler) HealthSummary(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	summary, err := h.svc.HealthSummary(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) RiskAssessment(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	ra, err := h.svc.RiskAssessment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ra)
}

func (h *Handler) SafetyAlerts(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	alerts, err := h.svc.SafetyAlerts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alerts)
}

func (h *Handler) Dashboard(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	dash, err := h.svc.Dashboard(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *Handler) CarePlan(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	plan, err := h.svc.CarePlan(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) Timeline(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	daysBack := 30
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Invalid("malformed days parameter: %s", raw)
		}
		daysBack = n
	}
	tl, err := h.svc.Timeline(c.Request().Context(), id, daysBack)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tl)
}

func (h *Handler) MedicationSafety(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	var body struct {
		MedicationName string `json:"medication_name"`
	}
	if err := c.Bind(&body); err != nil {
		return apperr.Invalid("invalid request body")
	}
	result, err := h.svc.MedicationSafety(c.Request().Context(), id, body.MedicationName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

package patient

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
	"github.com/tiny-steps/patient-service-sub001/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)
	api.PUT("/patients/:id/status", h.SetPatientStatus)

	api.POST("/patients/:id/allergies", h.AddAllergy)
	api.GET("/patients/:id/allergies", h.ListAllergies)
	api.DELETE("/patients/:id/allergies/:recordId", h.DeleteAllergy)

	api.POST("/patients/:id/medications", h.AddMedication)
	api.GET("/patients/:id/medications", h.ListMedications)
	api.DELETE("/patients/:id/medications/:recordId", h.DeleteMedication)

	api.POST("/patients/:id/medical-history", h.AddMedicalHistory)
	api.GET("/patients/:id/medical-history", h.ListMedicalHistory)
	api.DELETE("/patients/:id/medical-history/:recordId", h.DeleteMedicalHistory)

	api.POST("/patients/:id/emergency-contacts", h.AddEmergencyContact)
	api.GET("/patients/:id/emergency-contacts", h.ListEmergencyContacts)
	api.DELETE("/patients/:id/emergency-contacts/:recordId", h.DeleteEmergencyContact)

	api.POST("/patients/:id/insurance-policies", h.AddInsurancePolicy)
	api.GET("/patients/:id/insurance-policies", h.ListInsurancePolicies)
	api.DELETE("/patients/:id/insurance-policies/:recordId", h.DeleteInsurancePolicy)

	api.POST("/patients/:id/appointments", h.AddAppointmentLink)
	api.GET("/patients/:id/appointments", h.ListAppointmentLinks)
	api.DELETE("/patients/:id/appointments/:recordId", h.DeleteAppointmentLink)
}

func parseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.Invalid("malformed %s: %s", name, c.Param(name))
	}
	return id, nil
}

// -- Patient --

func (h *Handler) CreatePatient(c echo.Context) error {
	var req CreatePatientRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	p, err := h.svc.CreatePatient(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	includeInactive := c.QueryParam("include_inactive") == "true"
	p, err := h.svc.GetPatient(c.Request().Context(), id, includeInactive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req CreatePatientRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	p, err := h.svc.UpdatePatient(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetPatientStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if err := h.svc.SetPatientStatus(c.Request().Context(), id, body.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListPatients(c echo.Context) error {
	params := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params.Limit, params.Offset))
}

// -- Allergies --

func (h *Handler) AddAllergy(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var a Allergy
	if err := c.Bind(&a); err != nil {
		return apperr.Invalid("invalid request body")
	}
	a.PatientID = patientID
	if err := h.svc.AddAllergy(c.Request().Context(), &a); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAllergies(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListAllergies(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteAllergy(c echo.Context) error {
	recordID, err := parseID(c, "recordId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAllergy(c.Request().Context(), recordID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Medications --

func (h *Handler) AddMedication(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req CreateMedicationRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	m, err := h.svc.AddMedication(c.Request().Context(), patientID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) ListMedications(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListMedications(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteMedication(c echo.Context) error {
	recordID, err := parseID(c, "recordId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMedication(c.Request().Context(), recordID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Medical history --

func (h *Handler) AddMedicalHistory(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var e MedicalHistoryEntry
	if err := c.Bind(&e); err != nil {
		return apperr.Invalid("invalid request body")
	}
	e.PatientID = patientID
	if err := h.svc.AddMedicalHistory(c.Request().Context(), &e); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) ListMedicalHistory(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListMedicalHistory(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteMedicalHistory(c echo.Context) error {
	recordID, err := parseID(c, "recordId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMedicalHistory(c.Request().Context(), recordID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Emergency contacts --

func (h *Handler) AddEmergencyContact(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var ec EmergencyContact
	if err := c.Bind(&ec); err != nil {
		return apperr.Invalid("invalid request body")
	}
	ec.PatientID = patientID
	if err := h.svc.AddEmergencyContact(c.Request().Context(), &ec); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ec)
}

func (h *Handler) ListEmergencyContacts(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListEmergencyContacts(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteEmergencyContact(c echo.Context) error {
	recordID, err := parseID(c, "recordId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteEmergencyContact(c.Request().Context(), recordID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Insurance --

func (h *Handler) AddInsurancePolicy(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var ip InsurancePolicy
	if err := c.Bind(&ip); err != nil {
		return apperr.Invalid("invalid request body")
	}
	ip.PatientID = patientID
	if err := h.svc.AddInsurancePolicy(c.Request().Context(), &ip); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ip)
}

func (h *Handler) ListInsurancePolicies(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListInsurancePolicies(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteInsurancePolicy(c echo.Context) error {
	recordID, err := parseID(c, "recordId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteInsurancePolicy(c.Request().Context(), recordID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Appointment links --

func (h *Handler) AddAppointmentLink(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var al AppointmentLink
	if err := c.Bind(&al); err != nil {
		return apperr.Invalid("invalid request body")
	}
	al.PatientID = patientID
	if err := h.svc.AddAppointmentLink(c.Request().Context(), &al); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, al)
}

func (h *Handler) ListAppointmentLinks(c echo.Context) error {
	patientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListAppointmentLinks(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteAppointmentLink(c echo.Context) error {
	recordID, err := parseID(c, "recordId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAppointmentLink(c.Request().Context(), recordID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

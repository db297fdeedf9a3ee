package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VitalCareServices/clinic-scheduler/internal/domain/role"
	"github.com/VitalCareServices/clinic-scheduler/internal/dto"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/httpresp"
	"github.com/VitalCareServices/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/VitalCareServices/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	listUC   *ucAppointment.ListAppointments
	deleteUC *ucAppointment.DeleteAppointment
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	listUC *ucAppointment.ListAppointments,
	deleteUC *ucAppointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		listUC:   listUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	DoctorID uint   `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Notes    string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	DoctorID *uint   `json:"doctorId"`
	Date     *string `json:"date"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

// ======================================================
// CREATE (PATIENT)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "date and doctorId are required.")
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be an ISO-8601 instant.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		PatientUserID: userID,
		DoctorID:      req.DoctorID,
		Date:          date,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.AppointmentView(ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	aps, err := h.listUC.ForPatientUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to fetch appointments.")
		return
	}

	httpresp.OK(c, dto.AppointmentViews(aps))
}

func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	aps, err := h.listUC.ForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to fetch appointments.")
		return
	}

	httpresp.OK(c, dto.AppointmentViews(aps))
}

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	aps, err := h.listUC.All(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to fetch appointments.")
		return
	}

	httpresp.OK(c, dto.AppointmentViews(aps))
}

// ======================================================
// GET BY ID
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment id.")
		return
	}

	ap, err := h.listUC.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	// patients may only read their own bookings
	if c.MustGet(middleware.ContextUserRole).(string) == role.Patient.String() {
		userID := c.MustGet(middleware.ContextUserID).(uint)
		if ap.Patient.UserID == nil || *ap.Patient.UserID != userID {
			httperr.Forbidden(c, "not_your_appointment", "You can only view your own appointments.")
			return
		}
	}

	httpresp.OK(c, dto.AppointmentView(ap))
}

// ======================================================
// UPDATE (DOCTOR / ADMIN)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment id.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid update data.")
		return
	}

	in := ucAppointment.UpdateAppointmentInput{
		DoctorID: req.DoctorID,
		Status:   req.Status,
		Notes:    req.Notes,
	}

	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "date must be an ISO-8601 instant.")
			return
		}
		in.Date = &date
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), callerID, id, in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.AppointmentView(ap))
}

// ======================================================
// DELETE (ADMIN)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), callerID, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment deleted successfully"})
}

// ======================================================
// HELPERS
// ======================================================

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

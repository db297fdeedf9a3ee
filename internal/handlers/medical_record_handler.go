package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VitalCareServices/clinic-scheduler/internal/audit"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/middleware"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
	ucVisit "github.com/VitalCareServices/clinic-scheduler/internal/usecase/visit"
)

// ======================================================
// HANDLER
// ======================================================

type MedicalRecordHandler struct {
	db            *gorm.DB
	completeVisit *ucVisit.CompleteVisit
	audit         *audit.Dispatcher
}

func NewMedicalRecordHandler(
	db *gorm.DB,
	completeVisit *ucVisit.CompleteVisit,
	audit *audit.Dispatcher,
) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		db:            db,
		completeVisit: completeVisit,
		audit:         audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateRecordRequest struct {
	PatientID uint   `json:"patientId" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}

type UpdateRecordRequest struct {
	Title     *string `json:"title"`
	Diagnosis *string `json:"diagnosis"`
	Treatment *string `json:"treatment"`
	Notes     *string `json:"notes"`
}

type CompleteVisitRequest struct {
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}

// ======================================================
// CREATE (DOCTOR)
// ======================================================

func (h *MedicalRecordHandler) Create(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "patientId and title are required.")
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, req.PatientID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	record := models.MedicalRecord{
		PatientID: req.PatientID,
		DoctorID:  doctorID,
		Title:     req.Title,
		Diagnosis: req.Diagnosis,
		Treatment: req.Treatment,
		Notes:     req.Notes,
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_create_record", "Failed to create medical record.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &doctorID,
		Action:   "record_created",
		Entity:   "medical_record",
		EntityID: &record.ID,
	})

	c.JSON(http.StatusCreated, record)
}

// ======================================================
// COMPLETE VISIT (DOCTOR)
// ======================================================

// CompleteFromAppointment creates the record and flips the appointment
// to COMPLETED as one atomic unit.
func (h *MedicalRecordHandler) CompleteFromAppointment(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, err := parseID(c.Param("appointmentId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment id.")
		return
	}

	var req CompleteVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid visit data.")
		return
	}

	record, err := h.completeVisit.Execute(c.Request.Context(), doctorID, appointmentID, ucVisit.CompleteVisitInput{
		Diagnosis: req.Diagnosis,
		Treatment: req.Treatment,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ======================================================
// LIST
// ======================================================

func (h *MedicalRecordHandler) ListAll(c *gin.Context) {
	var records []models.MedicalRecord
	if err := h.db.
		Preload("Patient").
		Preload("Attachments").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Failed to list medical records.")
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *MedicalRecordHandler) ListByPatient(c *gin.Context) {
	patientID, err := parseID(c.Param("patientId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient id.")
		return
	}

	var records []models.MedicalRecord
	if err := h.db.
		Preload("Attachments").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Failed to list medical records.")
		return
	}

	c.JSON(http.StatusOK, records)
}

// ListOwn returns the records created by the calling doctor.
func (h *MedicalRecordHandler) ListOwn(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var records []models.MedicalRecord
	if err := h.db.
		Preload("Patient").
		Preload("Attachments").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Failed to list medical records.")
		return
	}

	c.JSON(http.StatusOK, records)
}

// ListMine returns the calling patient's records via the user→patient
// mapping. No profile means no records, not an error.
func (h *MedicalRecordHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var patient models.Patient
	if err := h.db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		c.JSON(http.StatusOK, []models.MedicalRecord{})
		return
	}

	var records []models.MedicalRecord
	if err := h.db.
		Preload("Attachments").
		Where("patient_id = ?", patient.ID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Failed to list medical records.")
		return
	}

	c.JSON(http.StatusOK, records)
}

// ======================================================
// UPDATE (DOCTOR) / DELETE (ADMIN)
// ======================================================

func (h *MedicalRecordHandler) Update(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid record id.")
		return
	}

	var record models.MedicalRecord
	if err := h.db.First(&record, id).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Medical record not found.")
		return
	}

	if record.DoctorID != doctorID {
		httperr.Forbidden(c, "not_your_record", "You can only update your own records.")
		return
	}

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid record data.")
		return
	}

	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		record.Treatment = *req.Treatment
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := h.db.Save(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_record", "Failed to update medical record.")
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid record id.")
		return
	}

	if err := h.db.Delete(&models.MedicalRecord{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_record", "Failed to delete medical record.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "record_deleted",
		Entity:   "medical_record",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Medical record deleted successfully"})
}

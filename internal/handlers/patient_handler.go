package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/middleware"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type PatientRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (r *PatientRequest) apply(p *models.Patient) error {
	p.FirstName = r.FirstName
	p.LastName = r.LastName
	p.Phone = r.Phone

	if r.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", r.DateOfBirth)
		if err != nil {
			return err
		}
		p.DateOfBirth = &dob
	}
	return nil
}

// ======================================================
// STAFF CRUD
// ======================================================

func (h *PatientHandler) Create(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "firstName is required.")
		return
	}

	var patient models.Patient
	if err := req.apply(&patient); err != nil {
		httperr.BadRequest(c, "invalid_date", "dateOfBirth must be YYYY-MM-DD.")
		return
	}

	if err := h.db.Create(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_create_patient", "Failed to create patient.")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) List(c *gin.Context) {
	var patients []models.Patient
	if err := h.db.
		Order("created_at DESC").
		Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Failed to list patients.")
		return
	}

	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient id.")
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, id).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient id.")
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, id).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient data.")
		return
	}

	if err := req.apply(&patient); err != nil {
		httperr.BadRequest(c, "invalid_date", "dateOfBirth must be YYYY-MM-DD.")
		return
	}

	if err := h.db.Save(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_update_patient", "Failed to update patient.")
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient id.")
		return
	}

	if err := h.db.Delete(&models.Patient{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_patient", "Failed to delete patient.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}

// ======================================================
// SELF PROFILE (PATIENT)
// ======================================================

// CreateMyProfile creates the caller's own patient profile. A user may
// self-create at most one; the partial unique index on user_id closes
// the race with a concurrent second attempt.
func (h *PatientHandler) CreateMyProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var existing models.Patient
	if err := h.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		httperr.Conflict(c, "profile_already_exists", "Patient profile already exists for this user.")
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "firstName is required.")
		return
	}

	patient := models.Patient{UserID: &userID}
	if err := req.apply(&patient); err != nil {
		httperr.BadRequest(c, "invalid_date", "dateOfBirth must be YYYY-MM-DD.")
		return
	}

	if err := h.db.Create(&patient).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "profile_already_exists", "Patient profile already exists for this user.")
			return
		}
		httperr.Internal(c, "failed_to_create_patient", "Failed to create profile.")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) GetMyProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var patient models.Patient
	if err := h.db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_profile_not_found", "Patient profile not found.")
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) UpdateMyProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var patient models.Patient
	if err := h.db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_profile_not_found", "Patient profile not found.")
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile data.")
		return
	}

	if err := req.apply(&patient); err != nil {
		httperr.BadRequest(c, "invalid_date", "dateOfBirth must be YYYY-MM-DD.")
		return
	}

	if err := h.db.Save(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_update_patient", "Failed to update profile.")
		return
	}

	c.JSON(http.StatusOK, patient)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/middleware"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
	"github.com/VitalCareServices/clinic-scheduler/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

// AttachmentHandler manages files attached to medical records. store
// is nil when S3 is not configured; the endpoints then answer 503.
type AttachmentHandler struct {
	db    *gorm.DB
	store *storage.AttachmentStore
}

func NewAttachmentHandler(db *gorm.DB, store *storage.AttachmentStore) *AttachmentHandler {
	return &AttachmentHandler{db: db, store: store}
}

// ======================================================
// UPLOAD (DOCTOR)
// ======================================================

func (h *AttachmentHandler) Upload(c *gin.Context) {
	if h.store == nil {
		httperr.FromError(c, httperr.ErrBusiness("attachment_storage_disabled"))
		return
	}

	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	recordID, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid record id.")
		return
	}

	var record models.MedicalRecord
	if err := h.db.First(&record, recordID).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Medical record not found.")
		return
	}

	if record.DoctorID != doctorID {
		httperr.Forbidden(c, "not_your_record", "You can only attach files to your own records.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "file is required.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Failed to read uploaded file.")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	key, err := h.store.Upload(c.Request.Context(), record.ID, fileHeader.Filename, contentType, file)
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Failed to store attachment.")
		return
	}

	attachment := models.RecordAttachment{
		MedicalRecordID: record.ID,
		FileName:        fileHeader.Filename,
		ContentType:     contentType,
		SizeBytes:       fileHeader.Size,
		StorageKey:      key,
	}

	if err := h.db.Create(&attachment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_attachment", "Failed to save attachment metadata.")
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

// ======================================================
// LIST WITH DOWNLOAD URLS
// ======================================================

type attachmentWithURL struct {
	models.RecordAttachment
	DownloadURL string `json:"download_url"`
}

func (h *AttachmentHandler) List(c *gin.Context) {
	if h.store == nil {
		httperr.FromError(c, httperr.ErrBusiness("attachment_storage_disabled"))
		return
	}

	recordID, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid record id.")
		return
	}

	var attachments []models.RecordAttachment
	if err := h.db.
		Where("medical_record_id = ?", recordID).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_attachments", "Failed to list attachments.")
		return
	}

	out := make([]attachmentWithURL, 0, len(attachments))
	for _, a := range attachments {
		url, err := h.store.PresignDownload(c.Request.Context(), a.StorageKey)
		if err != nil {
			httperr.Internal(c, "failed_to_sign_url", "Failed to sign download URL.")
			return
		}
		out = append(out, attachmentWithURL{RecordAttachment: a, DownloadURL: url})
	}

	c.JSON(http.StatusOK, out)
}

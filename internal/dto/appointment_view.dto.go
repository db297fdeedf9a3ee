package dto

import (
	"time"

	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

type AppointmentViewDTO struct {
	ID        uint               `json:"id"`
	PatientID uint               `json:"patient_id"`
	DoctorID  uint               `json:"doctor_id"`
	Date      time.Time          `json:"date"`
	Status    string             `json:"status"`
	Notes     string             `json:"notes"`
	Doctor    models.PublicUser  `json:"doctor"`
	Patient   *models.Patient    `json:"patient,omitempty"`
}

func AppointmentView(ap *models.Appointment) AppointmentViewDTO {
	view := AppointmentViewDTO{
		ID:        ap.ID,
		PatientID: ap.PatientID,
		DoctorID:  ap.DoctorID,
		Date:      ap.Date,
		Status:    ap.Status,
		Notes:     ap.Notes,
		Doctor:    ap.Doctor.Public(),
	}
	if ap.Patient.ID != 0 {
		patient := ap.Patient
		view.Patient = &patient
	}
	return view
}

func AppointmentViews(aps []models.Appointment) []AppointmentViewDTO {
	views := make([]AppointmentViewDTO, 0, len(aps))
	for i := range aps {
		views = append(views, AppointmentView(&aps[i]))
	}
	return views
}

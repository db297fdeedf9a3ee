package models

import "time"

type MedicalRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint `gorm:"index" json:"doctor_id"`
	Doctor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Title     string `gorm:"size:255;not null" json:"title"`
	Diagnosis string `gorm:"size:255" json:"diagnosis"`
	Treatment string `gorm:"size:255" json:"treatment"`
	Notes     string `gorm:"type:text" json:"notes"`

	Attachments []RecordAttachment `gorm:"foreignKey:MedicalRecordID" json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

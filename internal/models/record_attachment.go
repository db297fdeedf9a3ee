package models

import "time"

// RecordAttachment is the metadata row for a file stored in S3 and
// attached to a medical record.
type RecordAttachment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MedicalRecordID uint `gorm:"index" json:"medical_record_id"`

	FileName    string `gorm:"size:255;not null" json:"file_name"`
	ContentType string `gorm:"size:100" json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Nullable: staff can register patients that have no login. At most
	// one profile per user (partial unique index, see internal/db).
	UserID *uint `gorm:"index" json:"user_id"`

	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100" json:"last_name"`
	Phone       string     `gorm:"size:20" json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

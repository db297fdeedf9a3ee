package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/VitalCareServices/clinic-scheduler/internal/config"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Appointment{},
		&models.MedicalRecord{},
		&models.RecordAttachment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Slot uniqueness: at most one non-cancelled appointment per
	// (doctor, instant). Backstop for the locked check-then-insert.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
        ON appointments (doctor_id, date)
        WHERE status <> 'CANCELLED'
    `)

	// At most one patient profile per login.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_patients_user
        ON patients (user_id)
        WHERE user_id IS NOT NULL
    `)

	return db
}

package appointment

import (
	"context"
	"time"

	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

// Repository is the persistence contract for the scheduling engine and
// the visit completion workflow. WithTransaction hands callers a
// repository bound to one transaction; returning an error rolls back
// every write made through it.
type Repository interface {
	// -------- Patient resolution --------
	FindPatientByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// CountSlotCollisions counts non-cancelled appointments holding
	// (doctorID, date). excludeID skips the appointment's own row on
	// reschedule; zero excludes nothing. Inside a transaction the
	// matching rows are locked FOR UPDATE.
	CountSlotCollisions(
		ctx context.Context,
		doctorID uint,
		date time.Time,
		excludeID uint,
	) (int64, error)

	// -------- Appointment (read) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate reads an appointment holding its row
	// locked for the enclosing transaction, so a competing transition
	// observes the committed state instead of a stale one. Only
	// meaningful inside WithTransaction.
	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsByPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	ListAppointmentsByDoctor(
		ctx context.Context,
		doctorID uint,
	) ([]models.Appointment, error)

	ListAllAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	// -------- Appointment (mutate) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Medical records --------
	CreateMedicalRecord(
		ctx context.Context,
		rec *models.MedicalRecord,
	) error

	// -------- Transaction boundary --------
	WithTransaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}

package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/VitalCareServices/clinic-scheduler/internal/domain/appointment"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ForPatientUser lists the caller's own bookings. A user without a
// patient profile simply has no bookings, not an error.
func (uc *ListAppointments) ForPatientUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	patient, err := uc.repo.FindPatientByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Appointment{}, nil
		}
		return nil, err
	}

	return uc.repo.ListAppointmentsByPatient(ctx, patient.ID)
}

func (uc *ListAppointments) ForDoctor(
	ctx context.Context,
	doctorID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsByDoctor(ctx, doctorID)
}

func (uc *ListAppointments) All(
	ctx context.Context,
) ([]models.Appointment, error) {
	return uc.repo.ListAllAppointments(ctx)
}

func (uc *ListAppointments) ByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return ap, nil
}

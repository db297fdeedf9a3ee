package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/VitalCareServices/clinic-scheduler/internal/audit"
	domain "github.com/VitalCareServices/clinic-scheduler/internal/domain/appointment"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
)

// Administrative hard delete. Cancellation is the normal path; this is
// irreversible.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	callerID uint,
	appointmentID uint,
) error {

	if _, err := uc.repo.GetAppointmentByID(ctx, appointmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}

package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/VitalCareServices/clinic-scheduler/internal/audit"
	domain "github.com/VitalCareServices/clinic-scheduler/internal/domain/appointment"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
	"github.com/VitalCareServices/clinic-scheduler/internal/slotlock"
)

// ======================================================
// INPUT
// ======================================================

type UpdateAppointmentInput struct {
	DoctorID *uint
	Date     *time.Time
	Status   *string
	Notes    *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo   domain.Repository
	locker slotlock.Locker
	audit  *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker slotlock.Locker,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	callerID uint,
	appointmentID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	if in.Status != nil && !domain.IsValid(domain.Status(*in.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	// --------------------------------------------------
	// 1. Preliminary read: only resolves the target slot
	//    for lock acquisition. The transition itself
	//    re-reads under a row lock below.
	// --------------------------------------------------
	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	targetDoctor := ap.DoctorID
	if in.DoctorID != nil {
		targetDoctor = *in.DoctorID
	}
	targetDate := ap.Date
	if in.Date != nil {
		targetDate = in.Date.UTC()
	}

	// --------------------------------------------------
	// 2. Re-scheduling moves the slot: serialize against
	//    competing bookings of the target
	// --------------------------------------------------
	if targetDoctor != ap.DoctorID || !targetDate.Equal(ap.Date) {
		release, err := uc.locker.Acquire(ctx, targetDoctor, targetDate)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	// --------------------------------------------------
	// 3. Locked read + transition + collision check +
	//    save, one transaction
	// --------------------------------------------------
	var updated *models.Appointment

	err = uc.repo.WithTransaction(ctx, func(tx domain.Repository) error {

		cur, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		if in.Status != nil {
			next := domain.Status(*in.Status)

			// validated against the locked state, not the
			// preliminary read
			if err := domain.CanTransition(domain.Status(cur.Status), next); err != nil {
				return err
			}

			now := time.Now().UTC()
			switch next {
			case domain.StatusCancelled:
				cur.CancelledAt = &now
			case domain.StatusCompleted:
				cur.CompletedAt = &now
			}
			cur.Status = string(next)
		}

		if in.Notes != nil {
			cur.Notes = *in.Notes
		}

		newDoctor := cur.DoctorID
		if in.DoctorID != nil {
			newDoctor = *in.DoctorID
		}
		newDate := cur.Date
		if in.Date != nil {
			newDate = in.Date.UTC()
		}

		if newDoctor != cur.DoctorID || !newDate.Equal(cur.Date) {

			// the appointment's own row must not count against itself
			count, err := tx.CountSlotCollisions(ctx, newDoctor, newDate, cur.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				return httperr.ErrBusiness("slot_already_booked")
			}

			cur.DoctorID = newDoctor
			cur.Date = newDate
		}

		if err := tx.UpdateAppointment(ctx, cur); err != nil {
			return err
		}

		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return updated, nil
}

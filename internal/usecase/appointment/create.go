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

type CreateAppointmentInput struct {
	PatientUserID uint

	DoctorID uint
	Date     time.Time
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker slotlock.Locker
	audit  *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	locker slotlock.Locker,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Resolve the caller's patient profile
	// --------------------------------------------------
	patient, err := uc.repo.FindPatientByUserID(ctx, in.PatientUserID)
	if err != nil {
		// a storage failure is not a missing profile
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("patient_profile_not_found")
		}
		return nil, err
	}

	date := in.Date.UTC()

	// --------------------------------------------------
	// 2. Serialize bookings per (doctor, instant)
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, in.DoctorID, date)
	if err != nil {
		return nil, err
	}
	defer release()

	// --------------------------------------------------
	// 3. Collision check + insert, one transaction
	// --------------------------------------------------
	var created *models.Appointment

	err = uc.repo.WithTransaction(ctx, func(tx domain.Repository) error {

		count, err := tx.CountSlotCollisions(ctx, in.DoctorID, date, 0)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slot_already_booked")
		}

		ap := &models.Appointment{
			PatientID: patient.ID,
			DoctorID:  in.DoctorID,
			Date:      date,
			Status:    string(domain.InitialStatus()),
			Notes:     in.Notes,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.PatientUserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	// reload with patient and doctor identity joined
	full, err := uc.repo.GetAppointmentByID(ctx, created.ID)
	if err != nil {
		return created, nil
	}
	return full, nil
}

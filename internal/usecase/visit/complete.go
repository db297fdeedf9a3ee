package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/VitalCareServices/clinic-scheduler/internal/audit"
	domain "github.com/VitalCareServices/clinic-scheduler/internal/domain/appointment"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CompleteVisitInput struct {
	Diagnosis string
	Treatment string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

// CompleteVisit is the only writer allowed to move an appointment from
// CONFIRMED to COMPLETED, and it does so jointly with the medical
// record insert. Both effects commit together or not at all.
type CompleteVisit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteVisit(repo domain.Repository, audit *audit.Dispatcher) *CompleteVisit {
	return &CompleteVisit{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CompleteVisit) Execute(
	ctx context.Context,
	doctorID uint,
	appointmentID uint,
	in CompleteVisitInput,
) (*models.MedicalRecord, error) {

	var record *models.MedicalRecord

	err := uc.repo.WithTransaction(ctx, func(tx domain.Repository) error {

		// locked read: a concurrent completion of the same visit
		// waits here and then sees COMPLETED, so only one record is
		// ever written
		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		if ap.DoctorID != doctorID {
			return httperr.ErrBusiness("not_your_appointment")
		}

		now := time.Now().UTC()
		if err := domain.Complete(ap, now); err != nil {
			return err
		}

		rec := &models.MedicalRecord{
			PatientID: ap.PatientID,
			DoctorID:  doctorID,
			Title:     fmt.Sprintf("Appointment %s", ap.Date.Format("2006-01-02")),
			Diagnosis: in.Diagnosis,
			Treatment: in.Treatment,
			Notes:     in.Notes,
		}

		if err := tx.CreateMedicalRecord(ctx, rec); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &doctorID,
		Action:   "visit_completed",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return record, nil
}

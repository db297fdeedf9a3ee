package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/slotlock"
)

func strPtr(s string) *string { return &s }

func TestUpdateAppointmentConfirm(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)
	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	apID := repo.addAppointment(patientID, 2, date, "PENDING")

	uc := NewUpdateAppointment(repo, slotlock.NewLocalLocker(), nil)

	ap, err := uc.Execute(context.Background(), 2, apID, UpdateAppointmentInput{
		Status: strPtr("CONFIRMED"),
	})

	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", ap.Status)

	stored, err := repo.GetAppointmentByID(context.Background(), apID)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", stored.Status)
}

func TestUpdateAppointmentInvalidTransition(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)
	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	apID := repo.addAppointment(patientID, 2, date, "PENDING")

	uc := NewUpdateAppointment(repo, slotlock.NewLocalLocker(), nil)

	_, err := uc.Execute(context.Background(), 2, apID, UpdateAppointmentInput{
		Status: strPtr("COMPLETED"),
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	stored, _ := repo.GetAppointmentByID(context.Background(), apID)
	assert.Equal(t, "PENDING", stored.Status)
}

func TestUpdateAppointmentCancelSetsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)
	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	apID := repo.addAppointment(patientID, 2, date, "CONFIRMED")

	uc := NewUpdateAppointment(repo, slotlock.NewLocalLocker(), nil)

	ap, err := uc.Execute(context.Background(), 2, apID, UpdateAppointmentInput{
		Status: strPtr("CANCELLED"),
	})

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", ap.Status)
	assert.NotNil(t, ap.CancelledAt)
}

// A status-only update keeps the slot, so no collision check runs.
func TestUpdateAppointmentStatusOnlySkipsCollisionCheck(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)
	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	apID := repo.addAppointment(patientID, 2, date, "PENDING")

	uc := NewUpdateAppointment(repo, slotlock.NewLocalLocker(), nil)

	_, err := uc.Execute(context.Background(), 2, apID, UpdateAppointmentInput{
		Status: strPtr("CONFIRMED"),
		Notes:  strPtr("bring previous exams"),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, repo.countCalls)
}

func TestUpdateAppointmentRescheduleToFreeSlot(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)
	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	apID := repo.addAppointment(patientID, 2, date, "PENDING")

	uc := NewUpdateAppointment(repo, slotlock.NewLocalLocker(), nil)

	newDate := date.Add(2 * time.Hour)
	ap, err := uc.Execute(context.Background(), 2, apID, UpdateAppointmentInput{
		Date: &newDate,
	})

	require.NoError(t, err)
	assert.True(t, ap.Date.Equal(newDate))
	assert.Equal(t, 1, repo.countCalls)
}

func TestUpdateAppointmentRescheduleCollision(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)
	dateA := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	dateB := dateA.Add(time.Hour)

	repo.addAppointment(patientID, 2, dateA, "CONFIRMED")
	apID := repo.addAppointment(patientID, 2, dateB, "PENDING")

	uc := NewUpdateAppointment(repo, slotlock.NewLocalLocker(), nil)

	_, err := uc.Execute(context.Background(), 2, apID, UpdateAppointmentInput{
		Date: &dateA,
	})

	assert.True(t, httperr.IsBusiness(err, "slot_already_booked"))

	stored, _ := repo.GetAppointmentByID(context.Background(), apID)
	assert.True(t, stored.Date.Equal(dateB))
}

// Competing terminal transitions on one appointment: the transition is
// re-validated against the row state inside the transaction, so only
// the first writer wins and the appointment ends in exactly one
// terminal status.
func TestUpdateAppointmentConcurrentTerminalTransitions(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)
	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	apID := repo.addAppointment(patientID, 2, date, "CONFIRMED")

	uc := NewUpdateAppointment(repo, slotlock.NewLocalLocker(), nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i, status := range []string{"COMPLETED", "CANCELLED"} {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), 2, apID, UpdateAppointmentInput{
				Status: &status,
			})
		}(i, status)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "invalid_state"):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)

	stored, err := repo.GetAppointmentByID(context.Background(), apID)
	require.NoError(t, err)
	assert.Contains(t, []string{"COMPLETED", "CANCELLED"}, stored.Status)
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, slotlock.NewLocalLocker(), nil)

	_, err := uc.Execute(context.Background(), 2, 123, UpdateAppointmentInput{
		Notes: strPtr("nothing here"),
	})

	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

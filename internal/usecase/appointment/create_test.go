package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/slotlock"
)

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)

	uc := NewCreateAppointment(repo, slotlock.NewLocalLocker(), nil)

	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientUserID: 10,
		DoctorID:      2,
		Date:          date,
		Notes:         "first visit",
	})

	require.NoError(t, err)
	assert.Equal(t, patientID, ap.PatientID)
	assert.Equal(t, uint(2), ap.DoctorID)
	assert.Equal(t, "PENDING", ap.Status)
	assert.True(t, ap.Date.Equal(date))
	assert.Equal(t, "first visit", ap.Notes)
}

func TestCreateAppointmentWithoutProfile(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, slotlock.NewLocalLocker(), nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientUserID: 99,
		DoctorID:      2,
		Date:          time.Now().UTC(),
	})

	assert.True(t, httperr.IsBusiness(err, "patient_profile_not_found"))
}

// A storage failure during profile resolution is not a missing profile.
func TestCreateAppointmentStorageFailureSurfaces(t *testing.T) {
	repo := newFakeRepo()
	repo.addPatient(10)
	repo.failPatientLookup = errors.New("connection refused")

	uc := NewCreateAppointment(repo, slotlock.NewLocalLocker(), nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientUserID: 10,
		DoctorID:      2,
		Date:          time.Now().UTC(),
	})

	require.Error(t, err)
	assert.False(t, httperr.IsBusiness(err, "patient_profile_not_found"))
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)

	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	repo.addAppointment(patientID, 2, date, "PENDING")

	uc := NewCreateAppointment(repo, slotlock.NewLocalLocker(), nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientUserID: 10,
		DoctorID:      2,
		Date:          date,
	})

	assert.True(t, httperr.IsBusiness(err, "slot_already_booked"))
}

func TestCreateAppointmentCancelledSlotIsFree(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)

	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	repo.addAppointment(patientID, 2, date, "CANCELLED")

	uc := NewCreateAppointment(repo, slotlock.NewLocalLocker(), nil)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientUserID: 10,
		DoctorID:      2,
		Date:          date,
	})

	require.NoError(t, err)
	assert.Equal(t, "PENDING", ap.Status)
}

func TestCreateAppointmentSameInstantOtherDoctor(t *testing.T) {
	repo := newFakeRepo()
	patientID := repo.addPatient(10)

	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	repo.addAppointment(patientID, 2, date, "CONFIRMED")

	uc := NewCreateAppointment(repo, slotlock.NewLocalLocker(), nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientUserID: 10,
		DoctorID:      3,
		Date:          date,
	})

	assert.NoError(t, err)
}

// Concurrent bookings for the same (doctor, instant) must yield exactly
// one appointment; everyone else gets slot_already_booked.
func TestCreateAppointmentConcurrentSingleWinner(t *testing.T) {
	repo := newFakeRepo()
	repo.addPatient(10)

	uc := NewCreateAppointment(repo, slotlock.NewLocalLocker(), nil)

	date := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateAppointmentInput{
				PatientUserID: 10,
				DoctorID:      2,
				Date:          date,
			})
		}(i)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "slot_already_booked"):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, losses)

	all, err := repo.ListAllAppointments(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

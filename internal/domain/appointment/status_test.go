package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"completed to cancelled", StatusCompleted, StatusCancelled, false},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
		{"completed to confirmed", StatusCompleted, StatusConfirmed, false},
		{"same status", StatusConfirmed, StatusConfirmed, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(StatusPending))
	assert.False(t, IsValid(Status("SCHEDULED")))
	assert.False(t, IsValid(Status("")))
}

func TestConfirm(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Confirm(ap))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	err := Confirm(ap)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompleteSetsTimestamp(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusConfirmed)}
	now := time.Now()

	err := Complete(ap, now)

	assert.NoError(t, err)
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}

	err := Complete(ap, time.Now())

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, string(StatusPending), ap.Status)
	assert.Nil(t, ap.CompletedAt)
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(from)}
		err := Cancel(ap, time.Now())

		assert.NoError(t, err)
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.NotNil(t, ap.CancelledAt)
	}
}

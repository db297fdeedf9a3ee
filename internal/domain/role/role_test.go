package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
)

func TestParse(t *testing.T) {
	for _, name := range []string{"PATIENT", "DOCTOR", "ADMIN"} {
		r, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.String())
	}
}

func TestParseUnknown(t *testing.T) {
	for _, name := range []string{"", "patient", "SUPERUSER"} {
		_, err := Parse(name)
		assert.True(t, httperr.IsBusiness(err, "unknown_role"), name)
	}
}

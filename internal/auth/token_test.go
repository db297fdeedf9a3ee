package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("access", "refresh", time.Minute, time.Hour)

	token, err := codec.SignAccess(42, "ana@clinic.com", "PATIENT")
	require.NoError(t, err)

	claims, err := codec.VerifyAccess(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@clinic.com", claims.Email)
	assert.Equal(t, "PATIENT", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("access", "refresh", time.Minute, time.Hour)

	token, err := codec.SignRefresh(42)
	require.NoError(t, err)

	claims, err := codec.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

// The two token families use independent secrets; one must never verify
// as the other.
func TestAccessAndRefreshSecretsAreIndependent(t *testing.T) {
	codec := NewTokenCodec("access", "refresh", time.Minute, time.Hour)

	access, err := codec.SignAccess(42, "ana@clinic.com", "PATIENT")
	require.NoError(t, err)
	refresh, err := codec.SignRefresh(42)
	require.NoError(t, err)

	_, err = codec.VerifyRefresh(access)
	assert.True(t, httperr.IsBusiness(err, "invalid_or_expired_token"))

	_, err = codec.VerifyAccess(refresh)
	assert.True(t, httperr.IsBusiness(err, "invalid_or_expired_token"))
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	signer := NewTokenCodec("real-secret", "refresh", time.Minute, time.Hour)
	verifier := NewTokenCodec("other-secret", "refresh", time.Minute, time.Hour)

	token, err := signer.SignAccess(42, "ana@clinic.com", "PATIENT")
	require.NoError(t, err)

	_, err = verifier.VerifyAccess(token)
	assert.True(t, httperr.IsBusiness(err, "invalid_or_expired_token"))
}

// Expired tokens surface the same opaque code as forged ones.
func TestVerifyRejectsExpiredToken(t *testing.T) {
	codec := NewTokenCodec("access", "refresh", -time.Minute, -time.Minute)

	token, err := codec.SignAccess(42, "ana@clinic.com", "PATIENT")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(token)
	assert.True(t, httperr.IsBusiness(err, "invalid_or_expired_token"))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := NewTokenCodec("access", "refresh", time.Minute, time.Hour)

	_, err := codec.VerifyAccess("definitely.not.jwt")
	assert.True(t, httperr.IsBusiness(err, "invalid_or_expired_token"))
}

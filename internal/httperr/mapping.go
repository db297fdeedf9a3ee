package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusByCode is the closed mapping from business error codes to HTTP
// statuses, so the transport boundary stays deterministic.
var statusByCode = map[string]int{
	// validation
	"invalid_request":      http.StatusBadRequest,
	"invalid_date":         http.StatusBadRequest,
	"invalid_email_domain": http.StatusBadRequest,
	"invalid_state":        http.StatusBadRequest,

	// conflict
	"slot_already_booked":    http.StatusConflict,
	"duplicate_email":        http.StatusConflict,
	"profile_already_exists": http.StatusConflict,

	// auth
	"unknown_role":             http.StatusBadRequest,
	"invalid_credentials":      http.StatusUnauthorized,
	"missing_token":            http.StatusUnauthorized,
	"invalid_or_expired_token": http.StatusUnauthorized,
	"session_mismatch":         http.StatusUnauthorized,

	// not found
	"appointment_not_found":     http.StatusNotFound,
	"patient_not_found":         http.StatusNotFound,
	"record_not_found":          http.StatusNotFound,
	"patient_profile_not_found": http.StatusNotFound,
	"user_not_found":            http.StatusNotFound,

	// authorization
	"forbidden_role":       http.StatusForbidden,
	"not_your_appointment": http.StatusForbidden,
	"not_your_record":      http.StatusForbidden,

	// transient
	"slot_lock_timeout":           http.StatusServiceUnavailable,
	"attachment_storage_disabled": http.StatusServiceUnavailable,
}

var messageByCode = map[string]string{
	"slot_already_booked":         "This time slot is already booked.",
	"duplicate_email":             "Email already exists.",
	"profile_already_exists":      "Patient profile already exists for this user.",
	"unknown_role":                "Invalid role.",
	"invalid_credentials":         "Invalid credentials.",
	"missing_token":               "Refresh token missing.",
	"invalid_or_expired_token":    "Invalid or expired token.",
	"session_mismatch":            "Refresh token no longer matches the active session.",
	"appointment_not_found":       "Appointment not found.",
	"patient_not_found":           "Patient not found.",
	"record_not_found":            "Medical record not found.",
	"patient_profile_not_found":   "Patient profile not found.",
	"user_not_found":              "User not found.",
	"not_your_appointment":        "You can only act on your own appointments.",
	"not_your_record":             "You can only act on your own records.",
	"invalid_state":               "Appointment cannot change to that status.",
	"slot_lock_timeout":           "Timed out waiting for the slot, please retry.",
	"attachment_storage_disabled": "Attachment storage is not configured.",
}

// FromError writes the boundary response for a use-case error. Unknown
// errors become a generic 500 so internals never leak.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := statusByCode[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		msg, ok := messageByCode[be.Code]
		if !ok {
			msg = be.Code
		}
		Write(c, status, be.Code, msg)
		return
	}

	Internal(c, "internal_error", "Unexpected error.")
}

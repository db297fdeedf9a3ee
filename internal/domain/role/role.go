package role

import "github.com/VitalCareServices/clinic-scheduler/internal/httperr"

// ===============================
// Roles
// ===============================

type Role string

const (
	Patient Role = "PATIENT"
	Doctor  Role = "DOCTOR"
	Admin   Role = "ADMIN"
)

// Parse validates a role name against the closed set.
func Parse(name string) (Role, error) {
	switch Role(name) {
	case Patient, Doctor, Admin:
		return Role(name), nil
	}
	return "", httperr.ErrBusiness("unknown_role")
}

func (r Role) String() string {
	return string(r)
}

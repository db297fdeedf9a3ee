package auth

import (
	"context"
	"strings"

	"github.com/VitalCareServices/clinic-scheduler/internal/audit"
	authcore "github.com/VitalCareServices/clinic-scheduler/internal/auth"
	"github.com/VitalCareServices/clinic-scheduler/internal/domain/role"
	domain "github.com/VitalCareServices/clinic-scheduler/internal/domain/user"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

type RegisteredUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ======================================================
// USE CASE
// ======================================================

type RegisterUser struct {
	users domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterUser(users domain.Repository, audit *audit.Dispatcher) *RegisterUser {
	return &RegisterUser{users: users, audit: audit}
}

func (uc *RegisterUser) Execute(
	ctx context.Context,
	in RegisterInput,
) (*RegisteredUser, error) {

	email := strings.ToLower(strings.TrimSpace(in.Email))

	roleName := in.Role
	if roleName == "" {
		roleName = string(role.Patient)
	}
	r, err := role.Parse(roleName)
	if err != nil {
		return nil, err
	}

	if _, err := uc.users.FindByEmail(ctx, email); err == nil {
		return nil, httperr.ErrBusiness("duplicate_email")
	}

	hashed, err := authcore.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         r.String(),
	}

	// the unique index on email closes the check-then-insert race
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return &RegisteredUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}

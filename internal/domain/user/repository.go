package user

import (
	"context"

	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

// Repository is the credential store behind the session manager.
type Repository interface {
	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	FindByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	Create(
		ctx context.Context,
		u *models.User,
	) error

	// UpdateRefreshToken stores the single active session token for a
	// user, last writer wins. nil clears it.
	UpdateRefreshToken(
		ctx context.Context,
		userID uint,
		token *string,
	) error
}

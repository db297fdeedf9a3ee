package auth

import (
	"context"

	authcore "github.com/VitalCareServices/clinic-scheduler/internal/auth"
	domain "github.com/VitalCareServices/clinic-scheduler/internal/domain/user"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
)

type Refresh struct {
	users domain.Repository
	codec *authcore.TokenCodec
}

func NewRefresh(users domain.Repository, codec *authcore.TokenCodec) *Refresh {
	return &Refresh{users: users, codec: codec}
}

// Execute mints a new access token. The refresh token itself is not
// rotated here: it stays valid until the next login supersedes it.
func (uc *Refresh) Execute(
	ctx context.Context,
	refreshToken string,
) (string, error) {

	if refreshToken == "" {
		return "", httperr.ErrBusiness("missing_token")
	}

	claims, err := uc.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	u, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_or_expired_token")
	}

	// detects reuse of a token superseded by a later login
	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return "", httperr.ErrBusiness("session_mismatch")
	}

	return uc.codec.SignAccess(u.ID, u.Email, u.Role)
}

package auth

import (
	"context"
	"strings"

	"github.com/VitalCareServices/clinic-scheduler/internal/audit"
	authcore "github.com/VitalCareServices/clinic-scheduler/internal/auth"
	domain "github.com/VitalCareServices/clinic-scheduler/internal/domain/user"
	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Login struct {
	users domain.Repository
	codec *authcore.TokenCodec
	audit *audit.Dispatcher
}

func NewLogin(users domain.Repository, codec *authcore.TokenCodec, audit *audit.Dispatcher) *Login {
	return &Login{users: users, codec: codec, audit: audit}
}

func (uc *Login) Execute(
	ctx context.Context,
	email string,
	password string,
) (*TokenPair, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	// unknown email and wrong password fail identically, no user
	// enumeration through the error
	u, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	if !authcore.CheckPassword(u.PasswordHash, password) {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	accessToken, err := uc.codec.SignAccess(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := uc.codec.SignRefresh(u.ID)
	if err != nil {
		return nil, err
	}

	// single active session: every login supersedes the previous
	// refresh token, last writer wins
	if err := uc.users.UpdateRefreshToken(ctx, u.ID, &refreshToken); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

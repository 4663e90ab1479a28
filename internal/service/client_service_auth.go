package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-applicant-desk/internal/adapter"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/session"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
	"github.com/MKhiriev/go-applicant-desk/models"
)

type authService struct {
	adapter   adapter.ServerAdapter
	session   *session.Manager
	validator validators.Validator
	logger    *logger.Logger
}

// NewAuthService returns an AuthService backed by serverAdapter that keeps
// sess in sync with login, logout and profile changes.
func NewAuthService(serverAdapter adapter.ServerAdapter, sess *session.Manager, validator validators.Validator, logger *logger.Logger) AuthService {
	return &authService{adapter: serverAdapter, session: sess, validator: validator, logger: logger}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := a.adapter.Register(ctx, req); err != nil {
		return mapAdapterError(err)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	resp, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return models.User{}, mapLoginError(err)
	}

	if err := a.session.Start(ctx, resp.Tokens, resp.User); err != nil {
		// the session is usable in memory, only persistence failed
		a.logger.Err(err).Str("func", "authService.Login").Msg("session not persisted")
	}
	return resp.User, nil
}

func (a *authService) VerifyEmail(ctx context.Context, uid, token string) error {
	if uid == "" || token == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidLink)
	}

	if err := a.adapter.VerifyEmail(ctx, uid, token); err != nil {
		return mapAdapterError(err)
	}
	return nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	req := models.ForgotPasswordRequest{Email: email}
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := a.adapter.ForgotPassword(ctx, req); err != nil {
		return mapAdapterError(err)
	}
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := a.adapter.ResetPassword(ctx, req); err != nil {
		return mapAdapterError(err)
	}
	return nil
}

// Logout implements AuthService. Backend failures are logged and never
// prevent the local purge.
func (a *authService) Logout(ctx context.Context) error {
	if a.session.IsAuthenticated() {
		if err := a.adapter.Logout(ctx); err != nil {
			a.logger.Warn().Err(err).Str("func", "authService.Logout").Msg("backend logout failed, purging anyway")
		}
	}

	return a.session.Clear(ctx)
}

func (a *authService) CurrentUser() *models.User {
	return a.session.User()
}

func (a *authService) IsAuthenticated() bool {
	return a.session.IsAuthenticated()
}

func (a *authService) RefreshProfile(ctx context.Context) (models.User, error) {
	user, err := a.adapter.CurrentUser(ctx)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	if err := a.session.SetUser(ctx, user); err != nil {
		a.logger.Err(err).Str("func", "authService.RefreshProfile").Msg("profile not persisted")
	}
	return user, nil
}

func (a *authService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := a.adapter.UpdateProfile(ctx, req)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	if user.Email == "" && user.ID == "" {
		return a.RefreshProfile(ctx)
	}

	if err := a.session.SetUser(ctx, user); err != nil {
		a.logger.Err(err).Str("func", "authService.UpdateProfile").Msg("profile not persisted")
	}
	return user, nil
}

func (a *authService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := a.adapter.ChangePassword(ctx, req); err != nil {
		return mapAdapterError(err)
	}
	return nil
}

func (a *authService) RestoreSession(ctx context.Context) (bool, error) {
	ok, err := a.session.Restore(ctx)
	if err != nil {
		return false, fmt.Errorf("error restoring session: %w", err)
	}
	if !ok {
		return false, nil
	}

	if _, err := a.RefreshProfile(ctx); err != nil {
		if IsAuthFailure(err) {
			a.logger.Info().Err(err).Str("func", "authService.RestoreSession").Msg("persisted session rejected")
			// a failed refresh has already purged the session
			if a.session.IsAuthenticated() {
				_ = a.session.Clear(ctx)
			}
			return false, nil
		}

		a.logger.Warn().Err(err).Str("func", "authService.RestoreSession").Msg("profile check failed, keeping session")
		return true, err
	}

	return true, nil
}

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-applicant-desk/models"
)

// Register implements [ServerAdapter]. POST /api/user/register/.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) error {
	_, err := h.public(ctx, "register", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).Post("/api/user/register/")
	})
	return err
}

// Login implements [ServerAdapter]. POST /api/user/login/.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	resp, err := h.public(ctx, "login", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(creds).Post("/api/user/login/")
	})
	if err != nil {
		return models.LoginResponse{}, err
	}

	var out models.LoginResponse
	if err := decodeBody("login", resp, &out); err != nil {
		return models.LoginResponse{}, err
	}
	if out.Tokens.Access == "" {
		return models.LoginResponse{}, fmt.Errorf("login: %w: response carries no access token", ErrDecodingResponse)
	}
	return out, nil
}

// VerifyEmail implements [ServerAdapter].
// GET /api/user/verify-email/{uid}/{token}/.
func (h *httpServerAdapter) VerifyEmail(ctx context.Context, uid, token string) error {
	_, err := h.public(ctx, "verify email", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParams(map[string]string{"uid": uid, "token": token}).
			Get("/api/user/verify-email/{uid}/{token}/")
	})
	return err
}

// ForgotPassword implements [ServerAdapter]. POST /api/user/forgot-password/.
func (h *httpServerAdapter) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	_, err := h.public(ctx, "forgot password", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).Post("/api/user/forgot-password/")
	})
	return err
}

// ResetPassword implements [ServerAdapter].
// POST /api/user/reset-password/{uid}/{token}/.
func (h *httpServerAdapter) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	_, err := h.public(ctx, "reset password", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParams(map[string]string{"uid": req.UID, "token": req.Token}).
			SetBody(req).
			Post("/api/user/reset-password/{uid}/{token}/")
	})
	return err
}

// Logout implements [ServerAdapter]. POST /api/user/logout/, bounded by the
// logout timeout. A 401 is not refreshed.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	if h.logoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.logoutTimeout)
		defer cancel()
	}

	requestID := h.ids.Generate()
	resp, err := h.newRequest(ctx, requestID, h.session.Token()).Post("/api/user/logout/")
	_, err = h.finish("logout", requestID, resp, err)
	return err
}

// CurrentUser implements [ServerAdapter]. GET /api/user/me/.
func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	resp, err := h.authed(ctx, "current user", func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/user/me/")
	})
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := decodeBody("current user", resp, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// RefreshAccessToken implements [ServerAdapter]. POST /api/token/refresh/.
func (h *httpServerAdapter) RefreshAccessToken(ctx context.Context, refreshToken string) (models.RefreshResponse, error) {
	resp, err := h.public(ctx, "token refresh", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(models.RefreshRequest{Refresh: refreshToken}).Post("/api/token/refresh/")
	})
	if err != nil {
		return models.RefreshResponse{}, err
	}

	var out models.RefreshResponse
	if err := decodeBody("token refresh", resp, &out); err != nil {
		return models.RefreshResponse{}, err
	}
	return out, nil
}

// UpdateProfile implements [ServerAdapter]. PUT /api/user/update-profile/.
func (h *httpServerAdapter) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	resp, err := h.authed(ctx, "update profile", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).Put("/api/user/update-profile/")
	})
	if err != nil {
		return models.User{}, err
	}

	var out struct {
		User json.RawMessage `json:"user"`
	}
	if err := decodeBody("update profile", resp, &out); err != nil || len(out.User) == 0 {
		// acknowledgement without a profile
		return models.User{}, nil
	}

	var user models.User
	if err := json.Unmarshal(out.User, &user); err != nil {
		return models.User{}, fmt.Errorf("update profile: %w: %w", ErrDecodingResponse, err)
	}
	return user, nil
}

// ChangePassword implements [ServerAdapter]. POST /api/user/change-password/.
func (h *httpServerAdapter) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	_, err := h.authed(ctx, "change password", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).Post("/api/user/change-password/")
	})
	return err
}

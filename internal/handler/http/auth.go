package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/fakeapi"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/utils"
	"github.com/MKhiriev/go-applicant-desk/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.services.AccountService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message": app.MsgRegistrationSuccessful,
		"user":    user,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	user, tokens, err := h.services.AccountService.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		Message: app.MsgLoginSuccessful,
		User:    user,
		Tokens:  tokens,
	}, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	uid, token := chi.URLParam(r, "uid"), chi.URLParam(r, "token")

	err := h.services.AccountService.VerifyEmail(r.Context(), uid, token)
	switch {
	case err == nil:
		utils.WriteJSON(w, models.MessageResponse{Message: app.MsgEmailVerified}, http.StatusOK)
	case errors.Is(err, fakeapi.ErrInvalidLink):
		utils.WriteJSON(w, models.MessageResponse{Error: app.MsgInvalidVerificationLink}, http.StatusBadRequest)
	default:
		writeError(w, r, err)
	}
}

// forgotPassword answers the same way whether or not the account exists. The
// reset path is written to the log in place of an email.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, r, requiredField("email"))
		return
	}

	uid, token, err := h.services.AccountService.ResetLink(r.Context(), req.Email)
	switch {
	case err == nil:
		log.Info().
			Str("email", req.Email).
			Str("reset_path", fmt.Sprintf("/api/user/reset-password/%s/%s/", uid, token)).
			Msg("password reset link issued")
	case errors.Is(err, fakeapi.ErrUserNotFound):
		log.Debug().Str("email", req.Email).Msg("password reset requested for unknown email")
	default:
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPasswordResetSent}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UID, req.Token = chi.URLParam(r, "uid"), chi.URLParam(r, "token")

	err := h.services.AccountService.ResetPassword(r.Context(), req)
	switch {
	case err == nil:
		utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPasswordReset}, http.StatusOK)
	case errors.Is(err, fakeapi.ErrInvalidLink):
		utils.WriteJSON(w, models.MessageResponse{Error: app.MsgInvalidResetLink}, http.StatusBadRequest)
	default:
		writeError(w, r, err)
	}
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Refresh == "" {
		writeError(w, r, requiredField("refresh"))
		return
	}

	resp, err := h.services.AccountService.Refresh(r.Context(), req.Refresh)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// logout has nothing to revoke since tokens are stateless; it only confirms
// the bearer was valid.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Debug().Str("user_id", userID).Msg("logout")

	utils.WriteJSON(w, models.MessageResponse{Message: "Logout successful"}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	user, err := h.services.AccountService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message": app.MsgProfileUpdated,
		"user":    user,
	}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	if err := h.services.AccountService.ChangePassword(r.Context(), userID, req); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPasswordChanged}, http.StatusOK)
}

// currentUser loads the account behind the authenticated request. A token
// for a deleted account is answered like an invalid token.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	user, err := h.services.AccountService.User(r.Context(), userID)
	if errors.Is(err, fakeapi.ErrUserNotFound) {
		err = fakeapi.ErrTokenInvalid
	}
	if err != nil {
		writeError(w, r, err)
		return models.User{}, false
	}
	return user, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return false
	}
	return true
}

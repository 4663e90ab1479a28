package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrSessionExpired     = errors.New("session expired, please log in again")
	ErrValidation         = errors.New("validation failed")
	ErrServerUnavailable  = errors.New("server unavailable")

	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrApplicantNotFound  = errors.New("applicant not found")
	ErrInvalidLink        = errors.New("invalid or expired link")
	ErrEmptyApplicantID   = errors.New("applicant id is empty")
	ErrDocumentUnreadable = errors.New("document cannot be read")
)

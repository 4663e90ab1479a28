package fakeapi

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailNotVerified     = errors.New("email is not verified")
	ErrEmailAlreadyVerified = errors.New("email already verified")
	ErrInvalidLink          = errors.New("invalid or expired link")
	ErrUserNotFound         = errors.New("user not found")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrSamePassword         = errors.New("new password equals the current one")
	ErrTokenInvalid         = errors.New("token is invalid or expired")
	ErrApplicantNotFound    = errors.New("applicant not found")
	ErrTokenCreationFailed  = errors.New("token creation failed")
)

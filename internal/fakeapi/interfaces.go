package fakeapi

import (
	"context"

	"github.com/MKhiriev/go-applicant-desk/models"
)

// AccountService manages staff accounts and the tokens issued to them.
type AccountService interface {
	// Register creates an unverified account. Field problems are returned
	// as validators.FieldErrors.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// VerificationLink returns the uid/token pair that verifies email.
	VerificationLink(ctx context.Context, email string) (uid, token string, err error)

	// VerifyEmail consumes a verification link. It returns
	// ErrEmailAlreadyVerified for an account that is verified already.
	VerifyEmail(ctx context.Context, uid, token string) error

	// Login checks credentials and issues a token pair.
	Login(ctx context.Context, creds models.Credentials) (models.User, models.Tokens, error)

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (models.RefreshResponse, error)

	// Authenticate validates an access token and returns its user id.
	Authenticate(ctx context.Context, accessToken string) (string, error)

	// User returns the account with the given id.
	User(ctx context.Context, userID string) (models.User, error)

	// UpdateProfile changes the editable profile fields.
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error)

	// ChangePassword changes the password after checking the current one.
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error

	// ResetLink returns the uid/token pair that resets the password of the
	// account registered with email.
	ResetLink(ctx context.Context, email string) (uid, token string, err error)

	// ResetPassword sets a new password from a reset link.
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

// ApplicantRegistry stores applicant records and their documents.
type ApplicantRegistry interface {
	// Create validates and stores a new applicant owned by owner.
	Create(ctx context.Context, owner models.User, in models.ApplicantInput) (models.Applicant, error)

	// List returns applicants matching filter, newest first.
	List(ctx context.Context, filter models.ApplicantFilter) (models.ApplicantList, error)

	// Get returns one applicant.
	Get(ctx context.Context, id string) (models.Applicant, error)

	// Update replaces the scalar fields of an applicant. Academics and the
	// document are replaced only when given.
	Update(ctx context.Context, id string, in models.ApplicantInput) (models.Applicant, error)

	// Delete removes an applicant and its document.
	Delete(ctx context.Context, id string) error

	// Analytics returns dashboard counters.
	Analytics(ctx context.Context) (models.Analytics, error)

	// Document returns the stored document with the given file name.
	Document(ctx context.Context, name string) (models.Document, error)
}

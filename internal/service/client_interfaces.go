package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-applicant-desk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

// AuthService defines the client-side contract for account management and
// the session lifecycle. Implementations validate input before calling the
// backend and keep the session manager in sync with the outcome.
type AuthService interface {
	// Register creates a staff account. The account must verify its email
	// before it can log in.
	// Returns an error wrapping ErrValidation for missing or malformed fields.
	Register(ctx context.Context, req models.RegisterRequest) error

	// Login authenticates the user, persists the token pair and the profile,
	// and returns the profile.
	// Returns ErrInvalidCredentials for a wrong email/password pair and
	// ErrEmailNotVerified for an unverified account.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// VerifyEmail consumes the uid/token pair of a verification link.
	VerifyEmail(ctx context.Context, uid, token string) error

	// ForgotPassword asks the backend to send a reset link to email.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password using a reset link.
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error

	// Logout notifies the backend on a best-effort basis and then always
	// purges the local session.
	Logout(ctx context.Context) error

	// CurrentUser returns the cached profile, or nil when anonymous.
	CurrentUser() *models.User

	// RefreshProfile fetches the profile from the backend and caches it.
	// On failure the session is left untouched.
	RefreshProfile(ctx context.Context) (models.User, error)

	// UpdateProfile changes the profile and caches the result.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)

	// ChangePassword changes the password of the authenticated user.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// RestoreSession loads a persisted session at startup and verifies it
	// against the backend. It reports whether the user is authenticated
	// afterwards. Authentication failures purge the session; transient
	// failures keep it and are returned alongside true.
	RestoreSession(ctx context.Context) (bool, error)

	// IsAuthenticated reports whether a session is active.
	IsAuthenticated() bool
}

// ApplicantService defines the client-side contract for applicant records.
type ApplicantService interface {
	// Create uploads a new applicant.
	Create(ctx context.Context, in models.ApplicantInput) (models.Applicant, error)

	// List returns the applicants matching filter.
	List(ctx context.Context, filter models.ApplicantFilter) (models.ApplicantList, error)

	// Get returns one applicant.
	Get(ctx context.Context, id string) (models.Applicant, error)

	// Update replaces an applicant. The stored document is kept when
	// in.Document is nil.
	Update(ctx context.Context, id string, in models.ApplicantInput) (models.Applicant, error)

	// Delete removes an applicant.
	Delete(ctx context.Context, id string) error

	// Analytics returns the dashboard counters.
	Analytics(ctx context.Context) (models.Analytics, error)

	// LoadDocument reads a document from disk and checks it against the
	// upload rules (PDF, at most 10MB).
	LoadDocument(path string) (*models.Document, error)
}

// ProfileRefreshJob defines the contract for a background worker that
// periodically refreshes the cached profile while a session is active.
type ProfileRefreshJob interface {
	// Start launches the background goroutine. It refreshes every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

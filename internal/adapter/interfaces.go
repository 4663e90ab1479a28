// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and the
// applicant-tracking REST backend.
//
// The primary abstraction is [ServerAdapter]. The HTTP implementation
// ([NewHTTPServerAdapter]) attaches the session's bearer token to every
// authenticated request and, on a 401, asks the [session.Manager] for a
// refreshed token and replays the request exactly once.
//
// Non-2xx responses are returned as [*APIError] values that unwrap to the
// sentinel errors in errors.go, so callers can use [errors.Is] (e.g.
// [ErrUnauthorized] for 401) and [errors.As] to read backend field errors.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-applicant-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the applicant-tracking backend.
// Implementations are responsible for serialisation, bearer header
// management, the refresh-and-replay flow, and mapping transport-level
// errors to the sentinel values defined in this package.
type ServerAdapter interface {
	// Register creates a staff account. The backend emails a verification
	// link; the account cannot log in until it is verified.
	Register(ctx context.Context, req models.RegisterRequest) error

	// Login exchanges credentials for a token pair and the user profile.
	// A 401 here means bad credentials and never triggers a refresh.
	Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error)

	// VerifyEmail confirms the address identified by the uid/token pair from
	// the verification link.
	VerifyEmail(ctx context.Context, uid, token string) error

	// ForgotPassword asks the backend to email a password reset link.
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error

	// ResetPassword sets a new password using the uid/token pair from the
	// reset link.
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error

	// Logout notifies the backend that the session ends. It is bounded by
	// the configured logout timeout and never refreshes the token.
	Logout(ctx context.Context) error

	// CurrentUser returns the profile of the authenticated user.
	CurrentUser(ctx context.Context) (models.User, error)

	// RefreshAccessToken exchanges a refresh token for a new access token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (models.RefreshResponse, error)

	// UpdateProfile changes the editable profile fields and returns the
	// updated profile when the backend includes it.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)

	// ChangePassword changes the password of the authenticated user.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// CreateApplicant uploads a new applicant as a multipart form.
	CreateApplicant(ctx context.Context, in models.ApplicantInput) (models.Applicant, error)

	// ListApplicants returns the applicants matching filter.
	ListApplicants(ctx context.Context, filter models.ApplicantFilter) (models.ApplicantList, error)

	// GetApplicant returns a single applicant.
	GetApplicant(ctx context.Context, id string) (models.Applicant, error)

	// UpdateApplicant replaces an applicant. The document part is only sent
	// when in.Document is set.
	UpdateApplicant(ctx context.Context, id string, in models.ApplicantInput) (models.Applicant, error)

	// DeleteApplicant removes an applicant and its document.
	DeleteApplicant(ctx context.Context, id string) error

	// Analytics returns the dashboard counters.
	Analytics(ctx context.Context) (models.Analytics, error)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-applicant-desk/internal/adapter"
	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
)

const (
	msgServerUnavailable = "Server is unavailable. Check your connection and try again."
	msgFixFields         = "Please fix the highlighted fields."
	msgLoginRequired     = "Please log in to continue."
)

// humanizeError turns a service error into the line shown to the user.
// Field errors are rendered next to their inputs, so only a summary is
// returned for them.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrServerUnavailable):
		return msgServerUnavailable
	case errors.Is(err, service.ErrSessionExpired):
		return app.MsgSessionExpired
	case errors.Is(err, service.ErrInvalidCredentials):
		return app.MsgInvalidCredentials
	case errors.Is(err, service.ErrEmailNotVerified):
		return app.MsgEmailNotVerified
	case errors.Is(err, service.ErrNotAuthenticated):
		return msgLoginRequired
	case errors.Is(err, service.ErrPermissionDenied):
		return app.MsgApplicantForbidden
	case errors.Is(err, service.ErrApplicantNotFound):
		return app.MsgApplicantNotFound
	}

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if len(service.FieldErrors(err)) > 0 {
		return msgFixFields
	}
	return err.Error()
}

// ErrNoServices is returned by [New] when the client services are missing.
var ErrNoServices = errors.New("tui: client services are not configured")

// humanizeLinkError reports an invalid emailed link with fallback and
// defers to humanizeError for everything else.
func humanizeLinkError(err error, fallback string) string {
	if errors.Is(err, service.ErrInvalidLink) {
		var apiErr *adapter.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	return humanizeError(err)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-applicant-desk/internal/adapter"
	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/session"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. Backend field errors stay reachable through errors.As on
// *adapter.APIError.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	switch {
	case errors.Is(err, session.ErrSessionExpired):
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)

	case errors.Is(err, adapter.ErrTransport):
		return fmt.Errorf("%w: %w", ErrServerUnavailable, err)

	case errors.Is(err, adapter.ErrBadGateway):
		return fmt.Errorf("%w: %w", ErrServerUnavailable, err)

	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)

	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrApplicantNotFound, err)

	case errors.Is(err, adapter.ErrBadRequest):
		switch apiMessage(err) {
		case app.MsgInvalidVerificationLink, app.MsgInvalidResetLink:
			return fmt.Errorf("%w: %w", ErrInvalidLink, err)
		}
		return fmt.Errorf("%w: %w", ErrValidation, err)

	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	return err
}

// mapLoginError handles the login endpoint, where 401 and 403 describe the
// credentials rather than the session.
func mapLoginError(err error) error {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrEmailNotVerified, err)
	}
	return mapAdapterError(err)
}

// apiMessage extracts the backend message of an *adapter.APIError.
func apiMessage(err error) string {
	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// FieldErrors returns backend or client-side field errors carried by err,
// keyed by form field name.
func FieldErrors(err error) map[string][]string {
	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return apiErr.Fields
	}

	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return nil
}

// IsAuthFailure reports whether err means the session is no longer usable.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, session.ErrSessionExpired) ||
		errors.Is(err, adapter.ErrUnauthorized)
}

package tui

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-applicant-desk/internal/adapter"
	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
)

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "server unavailable", err: fmt.Errorf("%w: dial", service.ErrServerUnavailable), want: msgServerUnavailable},
		{name: "session expired", err: service.ErrSessionExpired, want: app.MsgSessionExpired},
		{name: "credentials", err: service.ErrInvalidCredentials, want: app.MsgInvalidCredentials},
		{name: "not verified", err: service.ErrEmailNotVerified, want: app.MsgEmailNotVerified},
		{name: "not authenticated", err: service.ErrNotAuthenticated, want: msgLoginRequired},
		{name: "forbidden", err: service.ErrPermissionDenied, want: app.MsgApplicantForbidden},
		{name: "not found", err: service.ErrApplicantNotFound, want: app.MsgApplicantNotFound},
		{
			name: "backend message",
			err:  fmt.Errorf("%w: %w", service.ErrValidation, adapter.NewAPIError(http.StatusBadRequest, app.MsgSamePassword, nil)),
			want: app.MsgSamePassword,
		},
		{
			name: "field errors only",
			err: fmt.Errorf("%w: %w", service.ErrValidation,
				adapter.NewAPIError(http.StatusBadRequest, "", map[string][]string{"email": {"bad"}})),
			want: msgFixFields,
		},
		{name: "anything else", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}

func TestHumanizeLinkError(t *testing.T) {
	assert.Equal(t, app.MsgInvalidResetLink,
		humanizeLinkError(fmt.Errorf("%w: %w", service.ErrValidation, service.ErrInvalidLink), app.MsgInvalidResetLink))

	backend := fmt.Errorf("%w: %w", service.ErrInvalidLink,
		adapter.NewAPIError(http.StatusBadRequest, app.MsgInvalidVerificationLink, nil))
	assert.Equal(t, app.MsgInvalidVerificationLink, humanizeLinkError(backend, "fallback"))

	assert.Equal(t, msgServerUnavailable, humanizeLinkError(service.ErrServerUnavailable, "fallback"))
}

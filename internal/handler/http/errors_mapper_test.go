package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/fakeapi"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
)

func TestWriteError_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "field errors",
			err:        fmt.Errorf("register: %w", validators.FieldErrors{"email": {"taken"}}),
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"email": []any{"taken"}},
		},
		{
			name:       "wrapped invalid credentials",
			err:        fmt.Errorf("login: %w", fakeapi.ErrInvalidCredentials),
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]any{"error": app.MsgInvalidCredentials},
		},
		{
			name:       "unverified email",
			err:        fakeapi.ErrEmailNotVerified,
			wantStatus: http.StatusForbidden,
			wantBody:   map[string]any{"error": app.MsgEmailNotVerified},
		},
		{
			name:       "invalid token carries code",
			err:        fakeapi.ErrTokenInvalid,
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]any{"detail": app.MsgTokenInvalid, "code": "token_not_valid"},
		},
		{
			name:       "missing applicant",
			err:        fakeapi.ErrApplicantNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"detail": app.MsgApplicantNotFound},
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": app.MsgInternalServerError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/", nil))
			rec := httptest.NewRecorder()

			writeError(rec, req, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, decode[map[string]any](t, rec))
		})
	}
}

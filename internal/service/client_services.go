package service

import (
	"github.com/MKhiriev/go-applicant-desk/internal/adapter"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/session"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
)

// ClientServices groups the services used by the terminal client.
type ClientServices struct {
	AuthService       AuthService
	ApplicantService  ApplicantService
	ProfileRefreshJob ProfileRefreshJob
}

// NewClientServices wires the services on top of serverAdapter and sess.
func NewClientServices(serverAdapter adapter.ServerAdapter, sess *session.Manager, logger *logger.Logger) *ClientServices {
	validator := validators.NewRequestValidator()

	authSvc := NewAuthService(serverAdapter, sess, validator, logger)
	applicantSvc := NewApplicantService(serverAdapter, validator)

	return &ClientServices{
		AuthService:       authSvc,
		ApplicantService:  applicantSvc,
		ProfileRefreshJob: NewProfileRefreshJob(authSvc, logger),
	}
}

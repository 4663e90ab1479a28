package fakeapi

import (
	"errors"

	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
)

// Services groups the backend services used by the HTTP handler.
type Services struct {
	AccountService    AccountService
	ApplicantRegistry ApplicantRegistry
}

// NewServices builds in-memory services. cfg.TokenSignKey is required.
func NewServices(cfg config.App, logger *logger.Logger) (*Services, error) {
	if cfg.TokenSignKey == "" {
		return nil, errors.New("token sign key is required")
	}

	validator := validators.NewRequestValidator()

	logger.Info().Msg("creating fake backend services...")
	return &Services{
		AccountService:    NewAccountService(cfg, validator, logger),
		ApplicantRegistry: NewApplicantRegistry(validator, logger),
	}, nil
}

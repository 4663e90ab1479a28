package http

import (
	"github.com/MKhiriev/go-applicant-desk/internal/fakeapi"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
)

type Handler struct {
	services *fakeapi.Services

	logger *logger.Logger
}

func NewHandler(services *fakeapi.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

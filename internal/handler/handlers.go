// Package handler groups the transport handlers of the development backend.
package handler

import (
	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/fakeapi"
	"github.com/MKhiriev/go-applicant-desk/internal/handler/http"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *fakeapi.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}

package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/internal/session"
	"github.com/MKhiriev/go-applicant-desk/internal/workers"
)

var errIncompleteServices = errors.New("client services are incomplete")

type App struct {
	services *service.ClientServices
	session  *session.Manager
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp wires services, the session manager and ui into a runnable client.
func NewApp(services *service.ClientServices, sess *session.Manager, ui UI, cfg config.Workers, logger *logger.Logger) (*App, error) {
	if services == nil || services.AuthService == nil || services.ProfileRefreshJob == nil || sess == nil || ui == nil {
		return nil, errIncompleteServices
	}

	return &App{
		services: services,
		session:  sess,
		ui:       ui,
		workers:  workers.New(workers.Every(cfg.ProfileRefreshInterval, services.ProfileRefreshJob)),
		logger:   logger,
	}, nil
}

// Run restores the persisted session and blocks in the UI. A restore that
// fails for transient reasons keeps the session and is only logged.
func (a *App) Run(ctx context.Context) error {
	a.session.OnExpired(a.ui.NotifySessionExpired)

	authenticated, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Bool("authenticated", authenticated).Msg("session restore incomplete")
	}
	a.logger.Info().Bool("authenticated", authenticated).Msg("client started")

	a.workers.Start(ctx)
	defer a.workers.Stop()

	if err := a.ui.Run(ctx, authenticated); err != nil {
		return err
	}

	a.logger.Info().Msg("client stopped")
	return nil
}

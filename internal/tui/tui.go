package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/models"
)

// TUI owns the terminal program of the dashboard.
type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	mu      sync.Mutex
	program *tea.Program
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.AuthService == nil || services.ApplicantService == nil {
		return nil, ErrNoServices
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// Run blocks until the user quits or ctx is cancelled. An authenticated
// session opens the applicant list, otherwise the main menu is shown.
func (t *TUI) Run(ctx context.Context, authenticated bool) error {
	start := pageMenu
	if authenticated {
		start = pageApplicants
	}

	root := NewRootModel(t.pages(ctx), start, t.buildInfo)
	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	t.setProgram(p)
	defer t.setProgram(nil)

	_, err := p.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// NotifySessionExpired switches the running program to the login page. It
// is safe to call from any goroutine and is a no-op while no program runs.
func (t *TUI) NotifySessionExpired(err error) {
	t.logger.Warn().Err(err).Msg("session expired")

	t.mu.Lock()
	p := t.program
	t.mu.Unlock()

	if p != nil {
		go p.Send(SessionExpired{})
	}
}

func (t *TUI) setProgram(p *tea.Program) {
	t.mu.Lock()
	t.program = p
	t.mu.Unlock()
}

func (t *TUI) pages(ctx context.Context) map[string]tea.Model {
	auth := t.services.AuthService
	applicants := t.services.ApplicantService

	return map[string]tea.Model{
		pageMenu:       NewMenuModel(),
		pageLogin:      NewLoginModel(ctx, auth),
		pageRegister:   NewRegisterModel(ctx, auth),
		pageVerify:     NewVerifyModel(ctx, auth),
		pageForgot:     NewForgotModel(ctx, auth),
		pageReset:      NewResetModel(ctx, auth),
		pageApplicants: NewApplicantListModel(ctx, applicants, auth),
		pageDetail:     NewDetailModel(ctx, applicants),
		pageForm:       NewApplicantFormModel(ctx, applicants),
		pageSettings:   NewSettingsModel(ctx, auth),
	}
}

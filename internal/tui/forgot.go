package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
)

type ForgotModel struct {
	ctx  context.Context
	auth service.AuthService

	form       form
	submitting bool
	errMsg     string
}

func NewForgotModel(ctx context.Context, auth service.AuthService) *ForgotModel {
	return &ForgotModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(newField("email", "Email", "you@example.com")),
	}
}

func (m *ForgotModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ForgotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case linkDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.form.setErrors(msg.err)
			return m, nil
		}
		m.form.reset()
		m.errMsg = ""
		return m, navigate(pageReset, Notice{Text: app.MsgPasswordResetSent})
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.errMsg = ""
			return m, navigate(pageMenu, nil)
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

func (m *ForgotModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	email := m.form.trimmed("email")
	if email == "" {
		m.errMsg = "Email is required."
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return linkDoneMsg{err: auth.ForgotPassword(ctx, email)}
	}
}

func (m *ForgotModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Sending...]\n")
	} else {
		b.WriteString("\n[Send reset link]\n")
	}
	writeStatus(&b, "", m.errMsg)

	return renderPage("FORGOT PASSWORD", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: submit")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/models"
)

// LoginModel is the login screen. A successful login emits [LoggedIn],
// which [RootModel] turns into a switch to the applicant list.
type LoginModel struct {
	ctx  context.Context
	auth service.AuthService

	form       form
	submitting bool
	notice     string
	errMsg     string
}

func NewLoginModel(ctx context.Context, auth service.AuthService) *LoginModel {
	return &LoginModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			newField("email", "Email", "you@example.com"),
			newSecretField("password", "Password", "password"),
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles:
//   - [Notice] shown above the form, e.g. after the session expired;
//   - loginDoneMsg, the result of the async login;
//   - esc back to the menu, tab/shift+tab focus, enter submit.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Notice:
		m.notice = msg.Text
		return m, nil
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.form.setErrors(msg.err)
			return m, nil
		}
		m.form.reset()
		m.notice, m.errMsg = "", ""
		user := msg.user
		return m, func() tea.Msg { return LoggedIn{User: user} }
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.notice, m.errMsg = "", ""
			return m, navigate(pageMenu, nil)
		case key.Matches(msg, keys.tab):
			m.form.next()
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.form.prev()
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	creds := models.Credentials{
		Email:    m.form.trimmed("email"),
		Password: m.form.value("password"),
	}
	if creds.Email == "" || creds.Password == "" {
		m.errMsg = "Email and password are required."
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		user, err := auth.Login(ctx, creds)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}
	writeStatus(&b, m.notice, m.errMsg)

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

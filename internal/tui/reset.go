package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/models"
)

// ResetModel sets a new password from an emailed reset link.
type ResetModel struct {
	ctx  context.Context
	auth service.AuthService

	form       form
	submitting bool
	notice     string
	errMsg     string
}

func NewResetModel(ctx context.Context, auth service.AuthService) *ResetModel {
	link := newField("link", "Link", "http://host/reset-password/<uid>/<token>/")
	link.input.CharLimit = 1024
	link.input.Width = 60

	return &ResetModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			link,
			newSecretField("password", "New password", "password"),
			newSecretField("confirm_password", "Confirm", "repeat password"),
		),
	}
}

func (m *ResetModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ResetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Notice:
		m.notice = msg.Text
		return m, nil
	case linkDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeLinkError(msg.err, app.MsgInvalidResetLink)
			m.form.setErrors(msg.err)
			return m, nil
		}
		m.form.reset()
		m.notice, m.errMsg = "", ""
		return m, navigate(pageLogin, Notice{Text: app.MsgPasswordReset})
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

func (m *ResetModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	uid, token, ok := parseLink(m.form.value("link"))
	if !ok {
		m.errMsg = "Paste the password reset link from the email."
		return nil
	}

	req := models.ResetPasswordRequest{
		UID:             uid,
		Token:           token,
		Password:        m.form.value("password"),
		ConfirmPassword: m.form.value("confirm_password"),
	}
	if req.Password == "" {
		m.errMsg = "New password is required."
		return nil
	}
	if req.Password != req.ConfirmPassword {
		m.form.fieldErrs = map[string][]string{"confirm_password": {app.MsgPasswordsDoNotMatch}}
		m.errMsg = msgFixFields
		return nil
	}

	m.errMsg = ""
	m.form.fieldErrs = nil
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return linkDoneMsg{err: auth.ResetPassword(ctx, req)}
	}
}

func (m *ResetModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Resetting...]\n")
	} else {
		b.WriteString("\n[Reset password]\n")
	}
	writeStatus(&b, m.notice, m.errMsg)

	return renderPage("RESET PASSWORD", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

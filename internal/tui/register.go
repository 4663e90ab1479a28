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

// RegisterModel is the sign-up screen. On success the form is cleared and
// the verification page opens with a notice about the emailed link.
type RegisterModel struct {
	ctx  context.Context
	auth service.AuthService

	form       form
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.AuthService) *RegisterModel {
	return &RegisterModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			newField("email", "Email", "you@example.com"),
			newField("full_name", "Full name", "Jane Doe"),
			newField("company_name", "Company", "optional"),
			newField("phone_no", "Phone", "optional"),
			newSecretField("password", "Password", "password"),
			newSecretField("confirm_password", "Confirm", "repeat password"),
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.form.setErrors(msg.err)
			return m, nil
		}
		m.form.reset()
		m.errMsg = ""
		return m, navigate(pageVerify, Notice{Text: app.MsgRegistrationSuccessful})
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.errMsg = ""
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

func (m *RegisterModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	req := models.RegisterRequest{
		Email:           m.form.trimmed("email"),
		FullName:        m.form.trimmed("full_name"),
		CompanyName:     m.form.trimmed("company_name"),
		PhoneNo:         m.form.trimmed("phone_no"),
		Password:        m.form.value("password"),
		ConfirmPassword: m.form.value("confirm_password"),
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
		return registerDoneMsg{err: auth.Register(ctx, req)}
	}
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Creating account...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}
	writeStatus(&b, "", m.errMsg)

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

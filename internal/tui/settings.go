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

var passwordFields = []string{"current_password", "new_password", "confirm_password"}

// SettingsModel edits the profile of the signed-in user and changes the
// password. Both share one list of inputs and have separate save keys.
type SettingsModel struct {
	ctx  context.Context
	auth service.AuthService

	form   form
	busy   bool
	notice string
	errMsg string
}

func NewSettingsModel(ctx context.Context, auth service.AuthService) *SettingsModel {
	return &SettingsModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			newField("email", "Email", ""),
			newField("full_name", "Full name", ""),
			newField("company_name", "Company", ""),
			newField("phone_no", "Phone", ""),
			newSecretField("current_password", "Current password", ""),
			newSecretField("new_password", "New password", ""),
			newSecretField("confirm_password", "Confirm", ""),
		),
	}
}

// Init shows the cached profile and refreshes it from the backend.
func (m *SettingsModel) Init() tea.Cmd {
	m.form.reset()
	m.notice, m.errMsg = "", ""
	if user := m.auth.CurrentUser(); user != nil {
		m.fill(*user)
	}

	ctx, auth := m.ctx, m.auth
	return tea.Batch(textinput.Blink, func() tea.Msg {
		user, err := auth.RefreshProfile(ctx)
		return profileLoadedMsg{user: user, err: err}
	})
}

func (m *SettingsModel) fill(user models.User) {
	m.form.setValue("email", user.Email)
	m.form.setValue("full_name", user.FullName)
	m.form.setValue("company_name", user.CompanyName)
	m.form.setValue("phone_no", user.PhoneNo)
}

func (m *SettingsModel) clearPasswords() {
	for _, k := range passwordFields {
		m.form.setValue(k, "")
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.fill(msg.user)
		return m, nil
	case profileSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.form.setErrors(msg.err)
			return m, nil
		}
		m.fill(msg.user)
		m.notice = app.MsgProfileUpdated
		return m, nil
	case passwordChangedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.form.setErrors(msg.err)
			return m, nil
		}
		m.clearPasswords()
		m.notice = app.MsgPasswordChanged
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(pageApplicants, nil)
		case key.Matches(msg, keys.tab):
			m.form.next()
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.form.prev()
			return m, nil
		case key.Matches(msg, keys.save):
			return m, m.saveProfile()
		case key.Matches(msg, changePasswordKey):
			return m, m.changePassword()
		}
	}

	return m, m.form.update(msg)
}

func (m *SettingsModel) begin() bool {
	if m.busy {
		return false
	}
	m.busy = true
	m.notice, m.errMsg = "", ""
	m.form.fieldErrs = nil
	return true
}

func (m *SettingsModel) saveProfile() tea.Cmd {
	if !m.begin() {
		return nil
	}

	req := models.UpdateProfileRequest{
		Email:       m.form.trimmed("email"),
		FullName:    m.form.trimmed("full_name"),
		CompanyName: m.form.trimmed("company_name"),
		PhoneNo:     m.form.trimmed("phone_no"),
	}
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		user, err := auth.UpdateProfile(ctx, req)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m *SettingsModel) changePassword() tea.Cmd {
	req := models.ChangePasswordRequest{
		CurrentPassword: m.form.value("current_password"),
		NewPassword:     m.form.value("new_password"),
		ConfirmPassword: m.form.value("confirm_password"),
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		m.errMsg = "Current and new password are required."
		return nil
	}
	if req.NewPassword != req.ConfirmPassword {
		m.form.fieldErrs = map[string][]string{"confirm_password": {app.MsgPasswordsDoNotMatch}}
		m.errMsg = msgFixFields
		return nil
	}
	if !m.begin() {
		return nil
	}

	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return passwordChangedMsg{err: auth.ChangePassword(ctx, req)}
	}
}

func (m *SettingsModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.busy {
		b.WriteString("\n[Saving...]\n")
	}
	writeStatus(&b, m.notice, m.errMsg)

	return renderPage("SETTINGS", strings.TrimRight(b.String(), "\n"),
		"esc: back │ tab: next field │ ctrl+s: save profile │ ctrl+p: change password")
}

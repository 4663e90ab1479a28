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

// VerifyModel confirms an email address from the emailed link. The link can
// be pasted whole or as separate uid and token values.
type VerifyModel struct {
	ctx  context.Context
	auth service.AuthService

	form       form
	submitting bool
	notice     string
	errMsg     string
}

func NewVerifyModel(ctx context.Context, auth service.AuthService) *VerifyModel {
	link := newField("link", "Link", "http://host/api/user/verify-email/<uid>/<token>/")
	link.input.CharLimit = 1024
	link.input.Width = 60

	return &VerifyModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			link,
			newField("uid", "UID", "or uid"),
			newField("token", "Token", "and token"),
		),
	}
}

func (m *VerifyModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *VerifyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Notice:
		m.notice = msg.Text
		return m, nil
	case linkDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeLinkError(msg.err, app.MsgInvalidVerificationLink)
			return m, nil
		}
		m.form.reset()
		m.notice, m.errMsg = "", ""
		return m, navigate(pageLogin, Notice{Text: app.MsgEmailVerified})
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

func (m *VerifyModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	uid, token := m.form.trimmed("uid"), m.form.trimmed("token")
	if l, t, ok := parseLink(m.form.value("link")); ok {
		uid, token = l, t
	}
	if uid == "" || token == "" {
		m.errMsg = "Paste the verification link or enter uid and token."
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return linkDoneMsg{err: auth.VerifyEmail(ctx, uid, token)}
	}
}

func (m *VerifyModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Verifying...]\n")
	} else {
		b.WriteString("\n[Verify]\n")
	}
	writeStatus(&b, m.notice, m.errMsg)

	return renderPage("VERIFY EMAIL", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

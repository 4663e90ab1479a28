package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/models"
)

// writeClipboard is swapped in tests, where no clipboard is available.
var writeClipboard = clipboard.WriteAll

type DetailModel struct {
	ctx        context.Context
	applicants service.ApplicantService

	id         string
	applicant  *models.Applicant
	loading    bool
	confirming bool
	notice     string
	errMsg     string
}

func NewDetailModel(ctx context.Context, applicants service.ApplicantService) *DetailModel {
	return &DetailModel{ctx: ctx, applicants: applicants}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) load() tea.Cmd {
	m.loading = true
	ctx, svc, id := m.ctx, m.applicants, m.id
	return func() tea.Msg {
		a, err := svc.Get(ctx, id)
		return applicantLoadedMsg{applicant: a, err: err}
	}
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenApplicant:
		m.id = msg.ID
		m.applicant = nil
		m.confirming = false
		m.notice, m.errMsg = msg.Notice, ""
		return m, m.load()
	case applicantLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		a := msg.applicant
		m.applicant = &a
		return m, nil
	case applicantDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.applicant = nil
		return m, navigate(pageApplicants, Notice{Text: app.MsgApplicantDeleted})
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Clipboard is unavailable: " + msg.err.Error()
			return m, nil
		}
		m.notice = "Email copied to clipboard."
		return m, nil
	case tea.KeyMsg:
		if m.confirming {
			return m, m.handleConfirm(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *DetailModel) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirming = false
		m.loading = true
		ctx, svc, id := m.ctx, m.applicants, m.id
		return func() tea.Msg {
			return applicantDeletedMsg{err: svc.Delete(ctx, id)}
		}
	case key.Matches(msg, keys.no):
		m.confirming = false
	}
	return nil
}

func (m *DetailModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.esc):
		return navigate(pageApplicants, nil)
	case key.Matches(msg, keys.reload):
		m.notice, m.errMsg = "", ""
		return m.load()
	}

	if m.applicant == nil {
		return nil
	}

	switch {
	case key.Matches(msg, keys.edit):
		a := *m.applicant
		return navigate(pageForm, EditApplicant{Applicant: &a})
	case key.Matches(msg, keys.delete):
		m.confirming = true
	case key.Matches(msg, keys.copy):
		email := m.applicant.Email
		return func() tea.Msg {
			return copiedMsg{err: writeClipboard(email)}
		}
	}
	return nil
}

func (m *DetailModel) View() string {
	var b strings.Builder

	switch {
	case m.applicant != nil:
		b.WriteString(renderApplicant(*m.applicant))
	case m.loading:
		b.WriteString("[Loading...]")
	}
	b.WriteString("\n")
	writeStatus(&b, m.notice, m.errMsg)

	page := renderPage("APPLICANT", strings.TrimRight(b.String(), "\n"),
		"esc: back │ e: edit │ d: delete │ c: copy email │ r: reload")
	if m.confirming && m.applicant != nil {
		overlay := confirmModel{message: m.applicant.FullName}.View()
		return lipgloss.JoinVertical(lipgloss.Left, page, "", overlay)
	}
	return page
}

func renderApplicant(a models.Applicant) string {
	rows := [][2]string{
		{"ID", a.ID.String()},
		{"Full name", a.FullName},
		{"Email", a.Email},
		{"Phone", a.PhoneNumber},
		{"Course", string(a.InterestedCourse)},
		{"Country", a.Country},
		{"City", a.City},
		{"State", a.State},
		{"Zipcode", a.Zipcode},
		{"Street", a.Street},
		{"Test", string(a.TestType)},
		{"Overall", a.OverallScore.String()},
		{"Reading", a.ReadingScore.String()},
		{"Listening", a.ListeningScore.String()},
		{"Writing", a.WritingScore.String()},
		{"Speaking", a.SpeakingScore.String()},
		{"Test date", a.AttendedDate},
		{"Document", a.DocumentURL},
		{"Created by", strings.TrimSpace(a.CreatedByName + " " + a.CreatedByEmail)},
	}
	if a.CreatedAt != nil {
		rows = append(rows, [2]string{"Created", a.CreatedAt.Format("2006-01-02 15:04")})
	}

	labelWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(r[0]); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-*s │ %s\n", labelWidth, r[0], valueOrDash(r[1])))
	}

	b.WriteString("\nAcademics\n")
	if len(a.Academics) == 0 {
		b.WriteString("  -\n")
	}
	for i, ac := range a.Academics {
		b.WriteString(fmt.Sprintf("  %d. %s, %s (%s)\n", i+1,
			valueOrDash(string(ac.DegreeLevel)), valueOrDash(ac.DegreeTitle), valueOrDash(ac.Institution)))
		b.WriteString(fmt.Sprintf("     passed %s │ %s to %s │ mark %s\n",
			valueOrDash(ac.PassedYear), valueOrDash(ac.CourseStartDate),
			valueOrDash(ac.CourseEndDate), valueOrDash(ac.ObtainedMark.String())))
	}
	return strings.TrimRight(b.String(), "\n")
}

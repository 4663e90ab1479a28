package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/models"
)

// courseFilters is the cycle order of the "f" key. The empty course shows
// every applicant.
var courseFilters = append([]models.Course{""}, models.Courses...)

// ApplicantListModel is the dashboard: analytics counters on top and the
// filtered applicant table below.
type ApplicantListModel struct {
	ctx        context.Context
	applicants service.ApplicantService
	auth       service.AuthService

	items     []models.Applicant
	count     int
	analytics models.Analytics
	idx       int

	search    textinput.Model
	searching bool
	courseIdx int

	loading bool
	notice  string
	errMsg  string
}

func NewApplicantListModel(ctx context.Context, applicants service.ApplicantService, auth service.AuthService) *ApplicantListModel {
	search := textinput.New()
	search.Placeholder = "name, email or phone"
	search.Width = 30
	search.Prompt = "/ "

	return &ApplicantListModel{
		ctx:        ctx,
		applicants: applicants,
		auth:       auth,
		search:     search,
	}
}

func (m *ApplicantListModel) Init() tea.Cmd {
	return m.load()
}

func (m *ApplicantListModel) filter() models.ApplicantFilter {
	return models.ApplicantFilter{
		InterestedCourse: courseFilters[m.courseIdx],
		Search:           strings.TrimSpace(m.search.Value()),
	}
}

func (m *ApplicantListModel) load() tea.Cmd {
	m.loading = true
	ctx, svc, filter := m.ctx, m.applicants, m.filter()

	return func() tea.Msg {
		list, err := svc.List(ctx, filter)
		if err != nil {
			return applicantsLoadedMsg{err: err}
		}
		analytics, err := svc.Analytics(ctx)
		return applicantsLoadedMsg{list: list, analytics: analytics, err: err}
	}
}

func (m *ApplicantListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Notice:
		m.notice = msg.Text
		return m, nil
	case applicantsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.list.Results
		m.count = msg.list.Count
		m.analytics = msg.analytics
		if m.idx >= len(m.items) {
			m.idx = max(len(m.items)-1, 0)
		}
		return m, nil
	case logoutDoneMsg:
		m.items, m.count, m.idx = nil, 0, 0
		m.notice, m.errMsg = "", ""
		return m, func() tea.Msg { return LoggedOut{} }
	case tea.KeyMsg:
		if m.searching {
			return m, m.updateSearch(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *ApplicantListModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.enter):
		m.searching = false
		m.search.Blur()
		m.idx = 0
		return m.load()
	case key.Matches(msg, keys.esc):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.idx = 0
		return m.load()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *ApplicantListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if len(m.items) == 0 {
			return nil
		}
		m.notice = ""
		return navigate(pageDetail, OpenApplicant{ID: m.items[m.idx].ID.String()})
	case key.Matches(msg, keys.search):
		m.searching = true
		return m.search.Focus()
	case key.Matches(msg, keys.filter):
		m.courseIdx = (m.courseIdx + 1) % len(courseFilters)
		m.idx = 0
		return m.load()
	case key.Matches(msg, keys.reload):
		m.notice = ""
		return m.load()
	case key.Matches(msg, keys.newItem):
		m.notice = ""
		return navigate(pageForm, EditApplicant{})
	case key.Matches(msg, keys.settings):
		m.notice = ""
		return navigate(pageSettings, nil)
	case key.Matches(msg, keys.logout):
		ctx, auth := m.ctx, m.auth
		return func() tea.Msg {
			_ = auth.Logout(ctx)
			return logoutDoneMsg{}
		}
	}
	return nil
}

func (m *ApplicantListModel) View() string {
	var b strings.Builder

	if user := m.auth.CurrentUser(); user != nil {
		b.WriteString("Signed in as ")
		b.WriteString(valueOrDash(user.FullName))
		b.WriteString(" <")
		b.WriteString(user.Email)
		b.WriteString(">\n\n")
	}

	b.WriteString(fmt.Sprintf("Total: %d │ This month: %d │ Completed: %d │ Pending: %d\n\n",
		m.analytics.TotalApplicants, m.analytics.ThisMonth,
		m.analytics.CompletedApplications, m.analytics.PendingApplications))

	course := "all"
	if c := courseFilters[m.courseIdx]; c != "" {
		course = string(c)
	}
	b.WriteString("Course: ")
	b.WriteString(course)
	b.WriteString("   ")
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(helpStyle.Render("/ to search"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderTable())

	if m.loading {
		b.WriteString("\n\n[Loading...]")
	}
	b.WriteString("\n")
	writeStatus(&b, m.notice, m.errMsg)

	hotKeys := "enter: open │ n: new │ /: search │ f: course │ r: reload │ s: settings │ l: logout"
	if m.searching {
		hotKeys = "enter: apply │ esc: clear"
	}
	return renderPage(fmt.Sprintf("APPLICANTS (%d)", m.count), strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *ApplicantListModel) renderTable() string {
	if len(m.items) == 0 {
		return "No applicants found."
	}

	const (
		nameWidth   = 24
		emailWidth  = 28
		courseWidth = 10
	)
	idWidth := lipgloss.Width("ID")
	for _, a := range m.items {
		if w := lipgloss.Width(a.ID.String()); w > idWidth {
			idWidth = w
		}
	}
	idWidth += 2

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s │ %-*s │ %-*s │ %-*s │ %s\n",
		idWidth, "ID", nameWidth, "Name", emailWidth, "Email", courseWidth, "Course", "Document"))
	b.WriteString(strings.Repeat("─", idWidth+nameWidth+emailWidth+courseWidth+22))
	b.WriteString("\n")

	for i, a := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		doc := "no"
		if a.Document != "" {
			doc = "yes"
		}
		b.WriteString(fmt.Sprintf("%-*s │ %-*s │ %-*s │ %-*s │ %s\n",
			idWidth, cursor+" "+a.ID.String(),
			nameWidth, fitText(a.FullName, nameWidth),
			emailWidth, fitText(a.Email, emailWidth),
			courseWidth, fitText(string(a.InterestedCourse), courseWidth),
			doc))
	}
	return strings.TrimRight(b.String(), "\n")
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-applicant-desk/models"
)

// Page names understood by [RootModel].
const (
	pageMenu       = "menu"
	pageLogin      = "login"
	pageRegister   = "register"
	pageVerify     = "verify"
	pageForgot     = "forgot"
	pageReset      = "reset"
	pageApplicants = "applicants"
	pageDetail     = "detail"
	pageForm       = "form"
	pageSettings   = "settings"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to the
// new page right after the switch instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// SessionExpired is sent by the session hook after a failed token refresh.
type SessionExpired struct{}

// LoggedIn is emitted by the login page once the session is established.
type LoggedIn struct {
	User models.User
}

// LoggedOut is emitted after the local session was purged.
type LoggedOut struct{}

// Notice is a one-line status shown by the receiving page.
type Notice struct {
	Text string
}

// OpenApplicant asks the detail page to show the applicant with ID.
type OpenApplicant struct {
	ID     string
	Notice string
}

// EditApplicant opens the form. A nil Applicant starts a new record.
type EditApplicant struct {
	Applicant *models.Applicant
}

type loginDoneMsg struct {
	user models.User
	err  error
}

type registerDoneMsg struct {
	err error
}

type linkDoneMsg struct {
	err error
}

type logoutDoneMsg struct{}

type applicantsLoadedMsg struct {
	list      models.ApplicantList
	analytics models.Analytics
	err       error
}

type applicantLoadedMsg struct {
	applicant models.Applicant
	err       error
}

type applicantSavedMsg struct {
	applicant models.Applicant
	created   bool
	docErr    bool
	err       error
}

type applicantDeletedMsg struct {
	err error
}

type profileLoadedMsg struct {
	user models.User
	err  error
}

type profileSavedMsg struct {
	user models.User
	err  error
}

type passwordChangedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

func navigate(page string, payload tea.Msg) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/models"
)

func newTestRoot(start string) (RootModel, map[string]*stubPage) {
	stubs := map[string]*stubPage{}
	pages := map[string]tea.Model{}
	for _, name := range []string{pageMenu, pageLogin, pageApplicants, pageDetail} {
		s := &stubPage{name: name}
		stubs[name] = s
		pages[name] = s
	}
	return NewRootModel(pages, start, models.NewAppBuildInfo("v1.2.3", "2026-10-01", "abc123")), stubs
}

func update(t *testing.T, r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	m, cmd := r.Update(msg)
	root, ok := m.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func TestRootModel_DelegatesToCurrentPage(t *testing.T) {
	r, stubs := newTestRoot(pageMenu)

	r, _ = update(t, r, runeMsg("x"))
	assert.Len(t, stubs[pageMenu].got, 1)
	assert.Empty(t, stubs[pageLogin].got)
	assert.Equal(t, "page:menu", r.View())
}

func TestRootModel_Navigate(t *testing.T) {
	r, stubs := newTestRoot(pageMenu)

	r, cmd := update(t, r, NavigateTo{Page: pageDetail, Payload: OpenApplicant{ID: "7"}})
	assert.Equal(t, pageDetail, r.Current())
	assert.Equal(t, 1, stubs[pageDetail].inits)

	payload := exec[OpenApplicant](t, cmd)
	assert.Equal(t, "7", payload.ID)

	r, _ = update(t, r, NavigateTo{Page: "missing"})
	assert.Equal(t, pageDetail, r.Current())
}

func TestRootModel_SessionMessages(t *testing.T) {
	tests := []struct {
		name       string
		msg        tea.Msg
		wantPage   string
		wantNotice string
	}{
		{name: "expired", msg: SessionExpired{}, wantPage: pageLogin, wantNotice: app.MsgSessionExpired},
		{name: "logged in", msg: LoggedIn{User: models.User{ID: "1"}}, wantPage: pageApplicants},
		{name: "logged out", msg: LoggedOut{}, wantPage: pageMenu, wantNotice: msgLoggedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRoot(pageDetail)

			r, cmd := update(t, r, tt.msg)
			assert.Equal(t, tt.wantPage, r.Current())
			if tt.wantNotice != "" {
				assert.Equal(t, tt.wantNotice, exec[Notice](t, cmd).Text)
			}
		})
	}
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	r, _ := newTestRoot(pageApplicants)

	_, cmd := update(t, r, keyMsg(tea.KeyCtrlC))
	exec[tea.QuitMsg](t, cmd)
}

func TestRootModel_BuildInfoOnlyOnMenu(t *testing.T) {
	r, stubs := newTestRoot(pageMenu)

	r, _ = update(t, r, runeMsg("v"))
	assert.Contains(t, r.View(), "v1.2.3")
	assert.Contains(t, r.View(), "abc123")

	// Keys are swallowed while the window is open.
	r, _ = update(t, r, runeMsg("x"))
	assert.Empty(t, stubs[pageMenu].got)

	r, _ = update(t, r, keyMsg(tea.KeyEsc))
	assert.Equal(t, "page:menu", r.View())

	r, _ = update(t, r, NavigateTo{Page: pageLogin})
	r, _ = update(t, r, runeMsg("v"))
	assert.Equal(t, "page:login", r.View())
	assert.Len(t, stubs[pageLogin].got, 1)
}

func TestRenderBuildInfoWindow_DevelopmentBuild(t *testing.T) {
	view := renderBuildInfoWindow(models.NewAppBuildInfo("", "", ""))

	assert.Contains(t, view, "Version: N/A")
	assert.Contains(t, view, "development build")
	assert.NotContains(t, renderBuildInfoWindow(models.NewAppBuildInfo("v1", "", "")), "development build")
}

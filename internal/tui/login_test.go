package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/mock"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/models"
)

var staffUser = models.User{ID: "1", Email: "staff@example.com", FullName: "Staff Member", IsVerified: true}

func TestLoginModel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	ctx := context.Background()
	m := NewLoginModel(ctx, auth)

	m.form.setValue("email", "  staff@example.com ")
	m.form.setValue("password", "secret")

	auth.EXPECT().Login(ctx, models.Credentials{Email: "staff@example.com", Password: "secret"}).Return(staffUser, nil)

	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	assert.True(t, m.submitting)
	done := exec[loginDoneMsg](t, cmd)

	_, cmd = m.Update(done)
	assert.Equal(t, staffUser, exec[LoggedIn](t, cmd).User)
	assert.False(t, m.submitting)
	assert.Empty(t, m.form.value("password"))
}

func TestLoginModel_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "credentials", err: service.ErrInvalidCredentials, want: app.MsgInvalidCredentials},
		{name: "unverified", err: service.ErrEmailNotVerified, want: app.MsgEmailNotVerified},
		{name: "offline", err: service.ErrServerUnavailable, want: msgServerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLoginModel(context.Background(), mock.NewMockAuthService(gomock.NewController(t)))

			_, cmd := m.Update(loginDoneMsg{err: tt.err})
			assert.Nil(t, cmd)
			assert.Equal(t, tt.want, m.errMsg)
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestLoginModel_RequiresBothFields(t *testing.T) {
	m := NewLoginModel(context.Background(), mock.NewMockAuthService(gomock.NewController(t)))
	m.form.setValue("email", "staff@example.com")

	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.NotEmpty(t, m.errMsg)
}

func TestLoginModel_NoticeAndEscape(t *testing.T) {
	m := NewLoginModel(context.Background(), mock.NewMockAuthService(gomock.NewController(t)))

	_, _ = m.Update(Notice{Text: app.MsgSessionExpired})
	assert.Contains(t, m.View(), app.MsgSessionExpired)

	_, cmd := m.Update(keyMsg(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, pageMenu, exec[NavigateTo](t, cmd).Page)
	assert.Empty(t, m.notice)
}

func TestLoginModel_TabMovesFocus(t *testing.T) {
	m := NewLoginModel(context.Background(), mock.NewMockAuthService(gomock.NewController(t)))

	_, _ = m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, 1, m.form.focus)
	_, _ = m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, 0, m.form.focus)
	_, _ = m.Update(keyMsg(tea.KeyShiftTab))
	assert.Equal(t, 1, m.form.focus)
}

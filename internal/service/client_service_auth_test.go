package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-applicant-desk/internal/adapter"
	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/mock"
	"github.com/MKhiriev/go-applicant-desk/internal/session"
	"github.com/MKhiriev/go-applicant-desk/internal/store"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
	"github.com/MKhiriev/go-applicant-desk/models"
)

var staff = models.User{ID: "1", Email: "staff@example.com", FullName: "Staff", IsVerified: true}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockServerAdapter, *session.Manager, store.SessionStorage) {
	t.Helper()

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	storage := store.NewMemorySessionStorage()
	sess := session.NewManager(storage, logger.Nop())

	svc := NewAuthService(mockAdapter, sess, validators.NewRequestValidator(), logger.Nop()).(*authService)
	return svc, mockAdapter, sess, storage
}

func wrapAPI(status int) error {
	return fmt.Errorf("op: %w", adapter.NewAPIError(status, "", nil))
}

// ── Login ──

func TestAuthService_Login_StartsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, storage := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	creds := models.Credentials{Email: "staff@example.com", Password: "secret"}
	mockAdapter.EXPECT().Login(ctx, creds).Return(models.LoginResponse{
		User:   staff,
		Tokens: models.Tokens{Access: "a1", Refresh: "r1"},
	}, nil)

	user, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, staff, user)

	assert.Equal(t, session.Authenticated, sess.State())
	assert.Equal(t, "a1", sess.Token())
	for _, key := range models.SessionKeys {
		_, err := storage.Get(ctx, key)
		assert.NoError(t, err, key)
	}
}

func TestAuthService_Login_ValidationSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), models.Credentials{Email: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	fields := FieldErrors(err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestAuthService_Login_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "wrong credentials", err: wrapAPI(http.StatusUnauthorized), want: ErrInvalidCredentials},
		{name: "unverified", err: wrapAPI(http.StatusForbidden), want: ErrEmailNotVerified},
		{name: "transport", err: fmt.Errorf("login: %w: dial tcp", adapter.ErrTransport), want: ErrServerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, mockAdapter, sess, _ := newTestAuthSvc(t, ctrl)

			mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.LoginResponse{}, tt.err)

			_, err := svc.Login(context.Background(), models.Credentials{Email: "staff@example.com", Password: "x"})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, session.Anonymous, sess.State())
		})
	}
}

// ── Logout ──

func TestAuthService_Logout_PurgesEvenWhenBackendFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, storage := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	require.NoError(t, sess.Start(ctx, models.Tokens{Access: "a1", Refresh: "r1"}, staff))
	mockAdapter.EXPECT().Logout(ctx).Return(fmt.Errorf("logout: %w: context deadline exceeded", adapter.ErrTransport))

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, session.Anonymous, sess.State())
	for _, key := range models.SessionKeys {
		_, err := storage.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrEntryNotFound, key)
	}
}

func TestAuthService_Logout_AnonymousSkipsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, sess, _ := newTestAuthSvc(t, ctrl)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, session.Anonymous, sess.State())
}

func TestAuthService_Logout_WinsOverInFlightRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, storage := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	require.NoError(t, sess.Start(ctx, models.Tokens{Access: "a1", Refresh: "r1"}, staff))

	started := make(chan struct{})
	release := make(chan struct{})
	mockAdapter.EXPECT().RefreshAccessToken(gomock.Any(), "r1").
		DoAndReturn(func(context.Context, string) (models.RefreshResponse, error) {
			close(started)
			<-release
			return models.RefreshResponse{Access: "a2", Refresh: "r2"}, nil
		})
	mockAdapter.EXPECT().Logout(ctx).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := sess.Refresh(ctx, "a1", mockAdapter.RefreshAccessToken)
		done <- err
	}()

	<-started
	require.NoError(t, svc.Logout(ctx))
	close(release)

	assert.ErrorIs(t, <-done, session.ErrSessionExpired)
	assert.Equal(t, session.Anonymous, sess.State())
	assert.False(t, svc.IsAuthenticated())
	for _, key := range models.SessionKeys {
		_, err := storage.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrEntryNotFound, key)
	}
}

func TestAuthService_RefreshProfile_AfterLogoutPersistsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, storage := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().CurrentUser(ctx).Return(staff, nil)

	user, err := svc.RefreshProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, staff, user)

	assert.Nil(t, sess.User())
	_, err = storage.Get(ctx, models.SessionKeyUser)
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

// ── Profile ──

func TestAuthService_RefreshProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	require.NoError(t, sess.Start(ctx, models.Tokens{Access: "a1", Refresh: "r1"}, staff))

	updated := staff
	updated.FullName = "New Name"
	mockAdapter.EXPECT().CurrentUser(ctx).Return(updated, nil)

	user, err := svc.RefreshProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	assert.Equal(t, "New Name", svc.CurrentUser().FullName)
}

func TestAuthService_RefreshProfile_FailureKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	require.NoError(t, sess.Start(ctx, models.Tokens{Access: "a1", Refresh: "r1"}, staff))

	mockAdapter.EXPECT().CurrentUser(ctx).Return(models.User{}, wrapAPI(http.StatusInternalServerError))

	_, err := svc.RefreshProfile(ctx)
	require.Error(t, err)
	assert.Equal(t, session.Authenticated, sess.State())
	assert.Equal(t, staff.FullName, svc.CurrentUser().FullName)
}

func TestAuthService_UpdateProfile_FallsBackToRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	require.NoError(t, sess.Start(ctx, models.Tokens{Access: "a1", Refresh: "r1"}, staff))

	req := models.UpdateProfileRequest{FullName: "Renamed"}
	renamed := staff
	renamed.FullName = "Renamed"

	gomock.InOrder(
		mockAdapter.EXPECT().UpdateProfile(ctx, req).Return(models.User{}, nil),
		mockAdapter.EXPECT().CurrentUser(ctx).Return(renamed, nil),
	)

	user, err := svc.UpdateProfile(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.FullName)
}

func TestAuthService_ChangePassword_BackendFieldError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _, _ := newTestAuthSvc(t, ctrl)

	backendErr := fmt.Errorf("change password: %w", adapter.NewAPIError(http.StatusBadRequest, "",
		map[string][]string{"new_password": {"This password is too short."}}))
	mockAdapter.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).Return(backendErr)

	err := svc.ChangePassword(context.Background(), models.ChangePasswordRequest{CurrentPassword: "a", NewPassword: "b"})
	require.Error(t, err)
	assert.Equal(t, []string{"This password is too short."}, FieldErrors(err)["new_password"])
}

// ── Links ──

func TestAuthService_VerifyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	assert.ErrorIs(t, svc.VerifyEmail(ctx, "", "tok"), ErrValidation)

	mockAdapter.EXPECT().VerifyEmail(ctx, "MQ", "tok").Return(nil)
	assert.NoError(t, svc.VerifyEmail(ctx, "MQ", "tok"))
}

func TestAuthService_ForgotAndResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ForgotPassword(ctx, "bad"), ErrValidation)

	mockAdapter.EXPECT().ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "staff@example.com"}).Return(nil)
	assert.NoError(t, svc.ForgotPassword(ctx, "staff@example.com"))

	req := models.ResetPasswordRequest{UID: "MQ", Token: "tok", Password: "pw", ConfirmPassword: "pw"}
	mockAdapter.EXPECT().ResetPassword(ctx, req).Return(
		fmt.Errorf("reset: %w", adapter.NewAPIError(http.StatusBadRequest, app.MsgInvalidResetLink, nil)))
	assert.ErrorIs(t, svc.ResetPassword(ctx, req), ErrInvalidLink)
}

// ── RestoreSession ──

func TestAuthService_RestoreSession_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestAuthSvc(t, ctrl)

	ok, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_RestoreSession_Valid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, storage := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx,
		store.Entry{Key: models.SessionKeyAccessToken, Value: "a1"},
		store.Entry{Key: models.SessionKeyRefreshToken, Value: "r1"},
	))
	mockAdapter.EXPECT().CurrentUser(gomock.Any()).Return(staff, nil)

	ok, err := svc.RestoreSession(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, session.Authenticated, sess.State())
	assert.Equal(t, staff.Email, svc.CurrentUser().Email)
}

func TestAuthService_RestoreSession_AuthFailurePurges(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, storage := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, store.Entry{Key: models.SessionKeyAccessToken, Value: "a1"}))
	mockAdapter.EXPECT().CurrentUser(gomock.Any()).Return(models.User{}, fmt.Errorf("current user: %w", session.ErrSessionExpired))

	ok, err := svc.RestoreSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, session.Anonymous, sess.State())

	_, err = storage.Get(ctx, models.SessionKeyAccessToken)
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

func TestAuthService_RestoreSession_TransientFailureKeeps(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, sess, storage := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, store.Entry{Key: models.SessionKeyAccessToken, Value: "a1"}))
	mockAdapter.EXPECT().CurrentUser(gomock.Any()).Return(models.User{}, fmt.Errorf("current user: %w: refused", adapter.ErrTransport))

	ok, err := svc.RestoreSession(ctx)
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrServerUnavailable)
	assert.Equal(t, session.Authenticated, sess.State())
}

func TestAuthService_RestoreSession_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStorage := mock.NewMockSessionStorage(ctrl)
	sess := session.NewManager(mockStorage, logger.Nop())
	svc := NewAuthService(mock.NewMockServerAdapter(ctrl), sess, validators.NewRequestValidator(), logger.Nop())

	mockStorage.EXPECT().Get(gomock.Any(), models.SessionKeyAccessToken).Return("", errors.New("disk gone"))

	ok, err := svc.RestoreSession(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
}

package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/mock"
	"github.com/MKhiriev/go-applicant-desk/models"
)

func TestNewProfileRefreshJob_ReturnsInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := NewProfileRefreshJob(mock.NewMockAuthService(ctrl), logger.Nop())
	require.NotNil(t, job)
}

func TestProfileRefreshJob_RefreshesWhileAuthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)

	var calls atomic.Int64
	auth.EXPECT().IsAuthenticated().Return(true).AnyTimes()
	auth.EXPECT().RefreshProfile(gomock.Any()).DoAndReturn(func(context.Context) (models.User, error) {
		calls.Add(1)
		return models.User{}, errors.New("backend down")
	}).AnyTimes()

	job := NewProfileRefreshJob(auth, logger.Nop())
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int64(3))
}

func TestProfileRefreshJob_SkipsWhenAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)

	auth.EXPECT().IsAuthenticated().Return(false).AnyTimes()
	// RefreshProfile must not be called

	job := NewProfileRefreshJob(auth, logger.Nop())
	job.Start(context.Background(), 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()
}

func TestProfileRefreshJob_StopStopsGoroutine(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)

	var calls atomic.Int64
	auth.EXPECT().IsAuthenticated().Return(true).AnyTimes()
	auth.EXPECT().RefreshProfile(gomock.Any()).DoAndReturn(func(context.Context) (models.User, error) {
		calls.Add(1)
		return models.User{}, nil
	}).AnyTimes()

	job := NewProfileRefreshJob(auth, logger.Nop())
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	afterStop := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, afterStop, calls.Load())
}

func TestProfileRefreshJob_StopBeforeStart_NoPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := NewProfileRefreshJob(mock.NewMockAuthService(ctrl), logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestProfileRefreshJob_RestartReplacesPrevious(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	auth.EXPECT().IsAuthenticated().Return(false).AnyTimes()

	job := NewProfileRefreshJob(auth, logger.Nop())
	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), time.Hour)
	job.Stop()
}

func TestProfileRefreshJob_ContextCancelStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	auth.EXPECT().IsAuthenticated().Return(false).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	job := NewProfileRefreshJob(auth, logger.Nop())
	job.Start(ctx, time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after context cancellation")
	}
}

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/mock"
	"github.com/MKhiriev/go-applicant-desk/internal/store"
)

func TestSealedStorage_SealErrorStopsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	sealer := mock.NewMockSealer(ctrl)
	backend := mock.NewMockSessionStorage(ctrl)

	sealer.EXPECT().Seal("tok").Return("", errors.New("entropy exhausted"))

	s := store.NewSealedSessionStorage(backend, sealer, logger.Nop())
	err := s.Set(context.Background(), store.Entry{Key: "access_token", Value: "tok"})
	require.Error(t, err)
}

func TestSealedStorage_SealsEachEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	sealer := mock.NewMockSealer(ctrl)
	backend := mock.NewMockSessionStorage(ctrl)

	sealer.EXPECT().Seal("a").Return("sealed-a", nil)
	sealer.EXPECT().Seal("r").Return("sealed-r", nil)
	backend.EXPECT().Set(gomock.Any(),
		store.Entry{Key: "access_token", Value: "sealed-a"},
		store.Entry{Key: "refresh_token", Value: "sealed-r"},
	).Return(nil)

	s := store.NewSealedSessionStorage(backend, sealer, logger.Nop())
	err := s.Set(context.Background(),
		store.Entry{Key: "access_token", Value: "a"},
		store.Entry{Key: "refresh_token", Value: "r"},
	)
	require.NoError(t, err)
}

func TestSealedStorage_BackendErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	sealer := mock.NewMockSealer(ctrl)
	backend := mock.NewMockSessionStorage(ctrl)

	backendErr := errors.New("connection reset")
	backend.EXPECT().Get(gomock.Any(), "user").Return("", backendErr)

	s := store.NewSealedSessionStorage(backend, sealer, logger.Nop())
	_, err := s.Get(context.Background(), "user")
	assert.ErrorIs(t, err, backendErr)
}

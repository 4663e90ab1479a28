package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/crypto"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
)

func TestBackendForDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: ":memory:", want: BackendMemory},
		{dsn: "memory", want: BackendMemory},
		{dsn: "redis://localhost:6379/0", want: BackendRedis},
		{dsn: "rediss://cache:6380", want: BackendRedis},
		{dsn: "applicant-desk.db", want: BackendSQLite},
		{dsn: "/var/lib/desk/session.db", want: BackendSQLite},
		{dsn: "postgres://localhost/db", wantErr: true},
		{dsn: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := BackendForDSN(tt.dsn)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedDSN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSessionStorage_Memory(t *testing.T) {
	sealer, err := crypto.NewSealer("")
	require.NoError(t, err)

	s, err := NewSessionStorage(context.Background(), config.SessionStorage{DSN: ":memory:"}, sealer, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), Entry{Key: "user", Value: "{}"}))
	value, err := s.Get(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
}

func TestNewSessionStorage_Unsupported(t *testing.T) {
	sealer, err := crypto.NewSealer("")
	require.NoError(t, err)

	_, err = NewSessionStorage(context.Background(), config.SessionStorage{DSN: "mysql://x"}, sealer, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestNewSessionStorage_Redis(t *testing.T) {
	dsn := os.Getenv("TEST_REDIS_URL")
	if dsn == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}

	ctx := context.Background()
	sealer, err := crypto.NewSealer("secret")
	require.NoError(t, err)

	s, err := NewSessionStorage(ctx, config.SessionStorage{DSN: dsn, RedisPrefix: "applicant-desk-test:"}, sealer, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, Entry{Key: "access_token", Value: "a"}, Entry{Key: "refresh_token", Value: "r"}))
	value, err := s.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "r", value)

	require.NoError(t, s.Delete(ctx, "access_token", "refresh_token"))
	_, err = s.Get(ctx, "access_token")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestNewConnectRedis_BadURL(t *testing.T) {
	_, err := NewConnectRedis(context.Background(), "redis://:badport", logger.Nop())
	assert.Error(t, err)
}

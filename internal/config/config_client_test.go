package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientConfig_Defaults(t *testing.T) {
	t.Setenv(envFileVariable, "")

	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultAdapterAddress, cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultLogoutTimeout, cfg.Adapter.LogoutTimeout)
	assert.Equal(t, DefaultSessionDSN, cfg.Storage.Session.DSN)
	assert.Equal(t, DefaultRedisPrefix, cfg.Storage.Session.RedisPrefix)
	assert.Equal(t, DefaultProfileRefreshInterval, cfg.Workers.ProfileRefreshInterval)
}

func TestGetClientConfig_NormalizesAddress(t *testing.T) {
	cfg, err := GetClientConfig([]string{"-a", "api.example.com:8443/", "-d", ":memory:"})
	require.NoError(t, err)

	assert.Equal(t, "http://api.example.com:8443", cfg.Adapter.HTTPAddress)
	assert.Equal(t, ":memory:", cfg.Storage.Session.DSN)
}

func TestGetClientConfig_NegativeIntervalRejected(t *testing.T) {
	_, err := GetClientConfig([]string{"-profile-refresh-interval", "-1m"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWorkerConfigs)
}

func TestGetClientConfig_NegativeTimeoutRejected(t *testing.T) {
	_, err := GetClientConfig([]string{"-request-timeout", "-1s"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestGetClientConfig_BadJSONPath(t *testing.T) {
	_, err := GetClientConfig([]string{"-c", filepath.Join(t.TempDir(), "absent.json")})
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "localhost:8000", want: "http://localhost:8000"},
		{in: "https://api.example.com/", want: "https://api.example.com"},
		{in: " http://x:1 ", want: "http://x:1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeBaseURL(tt.in))
		})
	}
}

func TestGetFakeAPIConfig(t *testing.T) {
	cfg, err := GetFakeAPIConfig([]string{"-token-sign-key", "sign"})
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultServerRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultAccessTokenDuration, cfg.App.AccessTokenDuration)
	assert.Equal(t, 24*time.Hour, cfg.App.RefreshTokenDuration)
}

func TestGetFakeAPIConfig_RequiresSignKey(t *testing.T) {
	_, err := GetFakeAPIConfig(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

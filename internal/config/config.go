// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from flags, environment variables and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the sealing secret and
	// the log file location.
	App App `envPrefix:"APP_"`

	// Adapter holds the backend address and outbound request timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the persisted session storage.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the listen settings of the development backend.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SecretKey seals persisted session values at rest. When empty, values
	// are stored in plain text.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// LogFile is the path of the client log file. Empty means a "logs" file
	// next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// TokenSignKey signs the JWTs issued by the development backend.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// AccessTokenDuration is the lifetime of development backend access
	// tokens (e.g. "5m").
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration is the lifetime of development backend refresh
	// tokens (e.g. "24h").
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`
}

// Adapter holds network settings of the client transport layer.
type Adapter struct {
	// HTTPAddress is the backend base URL (e.g. "http://localhost:8000").
	// A missing scheme defaults to http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LogoutTimeout bounds the best-effort logout notification.
	// Env: ADAPTER_LOGOUT_TIMEOUT
	LogoutTimeout time.Duration `env:"LOGOUT_TIMEOUT"`
}

// Storage groups the persisted state backends.
type Storage struct {
	// Session holds the session storage settings.
	Session SessionStorage `envPrefix:"SESSION_"`
}

// SessionStorage selects where the access_token, refresh_token and user
// entries are persisted.
type SessionStorage struct {
	// DSN is a SQLite file path, a redis:// URL, or ":memory:".
	// Env: STORAGE_SESSION_DSN
	DSN string `env:"DSN"`

	// RedisPrefix namespaces keys when DSN points at Redis.
	// Env: STORAGE_SESSION_REDIS_PREFIX
	RedisPrefix string `env:"REDIS_PREFIX"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// ProfileRefreshInterval is how often the cached user profile is
	// refreshed while a session is active.
	// Env: WORKERS_PROFILE_REFRESH_INTERVAL
	ProfileRefreshInterval time.Duration `env:"PROFILE_REFRESH_INTERVAL"`
}

// Server holds the listen settings of the development backend.
type Server struct {
	// HTTPAddress is the TCP address the development backend listens on,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads and merges the configuration from all sources.
// args are the command-line arguments without the program name.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withFlags(args).
		withEnv().
		withJSON().
		build()
}

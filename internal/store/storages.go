package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/crypto"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
)

// Backend names reported by [BackendForDSN].
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// BackendForDSN picks the storage backend a DSN refers to.
func BackendForDSN(dsn string) (string, error) {
	switch {
	case dsn == "":
		return "", fmt.Errorf("%w: empty dsn", ErrUnsupportedDSN)
	case dsn == ":memory:" || dsn == "memory":
		return BackendMemory, nil
	case strings.HasPrefix(dsn, "redis://") || strings.HasPrefix(dsn, "rediss://"):
		return BackendRedis, nil
	case strings.Contains(dsn, "://"):
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	default:
		return BackendSQLite, nil
	}
}

// NewSessionStorage initialises the session storage selected by cfg.DSN.
// It performs the following steps:
//  1. Connects to SQLite (running schema migrations), Redis, or creates a
//     process-local map.
//  2. Wraps the backend so that every value is sealed with sealer.
//
// Returns an error if the connection cannot be established or if migration
// fails.
func NewSessionStorage(ctx context.Context, cfg config.SessionStorage, sealer crypto.Sealer, log *logger.Logger) (SessionStorage, error) {
	backend, err := BackendForDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}
	log.Info().Str("backend", backend).Msg("creating session storage...")

	var storage SessionStorage
	switch backend {
	case BackendMemory:
		storage = NewMemorySessionStorage()
	case BackendRedis:
		client, err := NewConnectRedis(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		storage = NewRedisSessionStorage(client, cfg.RedisPrefix, log)
	default:
		db, err := NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		storage = NewSQLiteSessionStorage(db, log)
	}

	return NewSealedSessionStorage(storage, sealer, log), nil
}

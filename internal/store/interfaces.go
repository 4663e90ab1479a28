package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/session_storage_mock.go -package=mock

// Entry is a single persisted key/value pair.
type Entry struct {
	Key   string
	Value string
}

// SessionStorage is the durable key/value store behind the client session.
// It holds the access_token, refresh_token and user entries and survives
// process restarts.
type SessionStorage interface {
	// Get returns the value stored under key, or ErrEntryNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes all entries atomically, replacing existing values.
	Set(ctx context.Context, entries ...Entry) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases the underlying connection.
	Close() error
}

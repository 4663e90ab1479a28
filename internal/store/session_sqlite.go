package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-applicant-desk/internal/logger"
)

type sqliteSessionStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteSessionStorage returns a [SessionStorage] backed by the
// session_entries table of db.
func NewSQLiteSessionStorage(db *DB, logger *logger.Logger) SessionStorage {
	return &sqliteSessionStorage{
		db:     db,
		logger: logger,
	}
}

func (s *sqliteSessionStorage) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetEntryQuery(key)
	if err != nil {
		return "", err
	}

	var value string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrEntryNotFound
		}
		log.Err(err).
			Str("func", "sqliteSessionStorage.Get").
			Str("key", key).
			Msg("failed to read session entry")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (s *sqliteSessionStorage) Set(ctx context.Context, entries ...Entry) error {
	log := logger.FromContext(ctx)
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "sqliteSessionStorage.Set").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, entry := range entries {
		query, args, err := buildUpsertEntryQuery(entry, now)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "sqliteSessionStorage.Set").
				Str("key", entry.Key).
				Msg("failed to upsert session entry")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "sqliteSessionStorage.Set").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteSessionStorage) Delete(ctx context.Context, keys ...string) error {
	log := logger.FromContext(ctx)
	if len(keys) == 0 {
		return nil
	}

	query, args, err := buildDeleteEntriesQuery(keys)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteSessionStorage.Delete").
			Strs("keys", keys).
			Msg("failed to delete session entries")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteSessionStorage) Close() error {
	return s.db.Close()
}

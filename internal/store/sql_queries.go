package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const sessionEntriesTable = "session_entries"

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildGetEntryQuery(key string) (string, []any, error) {
	query, args, err := sqlite.
		Select("value").
		From(sessionEntriesTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertEntryQuery(entry Entry, now time.Time) (string, []any, error) {
	query, args, err := sqlite.
		Insert(sessionEntriesTable).
		Columns("key", "value", "updated_at").
		Values(entry.Key, entry.Value, now).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteEntriesQuery(keys []string) (string, []any, error) {
	query, args, err := sqlite.
		Delete(sessionEntriesTable).
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

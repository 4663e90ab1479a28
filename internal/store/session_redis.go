package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-applicant-desk/internal/logger"
)

type redisSessionStorage struct {
	client *redis.Client
	prefix string
	logger *logger.Logger
}

// NewConnectRedis parses a redis:// or rediss:// URL and verifies the
// connection.
func NewConnectRedis(ctx context.Context, dsn string, log *logger.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("invalid redis url")
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}
	opts.PoolSize = 4
	opts.MinIdleConns = 1

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Debug().Str("func", "NewConnectRedis").Msg("connected to redis successfully")

	return client, nil
}

// NewRedisSessionStorage returns a [SessionStorage] storing each entry as a
// Redis string under prefix+key.
func NewRedisSessionStorage(client *redis.Client, prefix string, logger *logger.Logger) SessionStorage {
	return &redisSessionStorage{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *redisSessionStorage) key(k string) string {
	return s.prefix + k
}

func (s *redisSessionStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrEntryNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "redisSessionStorage.Get").
			Str("key", key).
			Msg("failed to read session entry")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}

func (s *redisSessionStorage) Set(ctx context.Context, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, entry := range entries {
			pipe.Set(ctx, s.key(entry.Key), entry.Value, 0)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "redisSessionStorage.Set").
			Msg("failed to write session entries")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *redisSessionStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}

	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "redisSessionStorage.Delete").
			Strs("keys", keys).
			Msg("failed to delete session entries")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *redisSessionStorage) Close() error {
	return s.client.Close()
}

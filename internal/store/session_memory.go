package store

import (
	"context"
	"sync"
)

type memorySessionStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemorySessionStorage returns a process-local [SessionStorage]. Entries
// are lost when the process exits.
func NewMemorySessionStorage() SessionStorage {
	return &memorySessionStorage{entries: make(map[string]string)}
}

func (s *memorySessionStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return "", ErrEntryNotFound
	}
	return value, nil
}

func (s *memorySessionStorage) Set(_ context.Context, entries ...Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		s.entries[entry.Key] = entry.Value
	}
	return nil
}

func (s *memorySessionStorage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

func (s *memorySessionStorage) Close() error { return nil }

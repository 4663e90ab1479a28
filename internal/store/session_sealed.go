// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-applicant-desk/internal/crypto"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
)

type sealedSessionStorage struct {
	SessionStorage
	sealer crypto.Sealer
	logger *logger.Logger
}

// NewSealedSessionStorage wraps next so that values are sealed before they
// are written and opened after they are read. A value that cannot be opened
// (for example after the secret changed) reads as ErrEntryNotFound.
func NewSealedSessionStorage(next SessionStorage, sealer crypto.Sealer, logger *logger.Logger) SessionStorage {
	return &sealedSessionStorage{
		SessionStorage: next,
		sealer:         sealer,
		logger:         logger,
	}
}

func (s *sealedSessionStorage) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.SessionStorage.Get(ctx, key)
	if err != nil {
		return "", err
	}

	value, err := s.sealer.Open(sealed)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "sealedSessionStorage.Get").
			Str("key", key).
			Msg("discarding session entry that cannot be opened")
		return "", ErrEntryNotFound
	}
	return value, nil
}

func (s *sealedSessionStorage) Set(ctx context.Context, entries ...Entry) error {
	sealed := make([]Entry, len(entries))
	for i, entry := range entries {
		value, err := s.sealer.Seal(entry.Value)
		if err != nil {
			return fmt.Errorf("error sealing session entry %q: %w", entry.Key, err)
		}
		sealed[i] = Entry{Key: entry.Key, Value: value}
	}

	return s.SessionStorage.Set(ctx, sealed...)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/store"
	"github.com/MKhiriev/go-applicant-desk/internal/utils"
	"github.com/MKhiriev/go-applicant-desk/models"
)

const refreshFlightKey = "refresh"

// RefreshFunc exchanges a refresh token for a new access token.
type RefreshFunc func(ctx context.Context, refreshToken string) (models.RefreshResponse, error)

// Manager is the explicit session object shared by the transport and the
// services. It is safe for concurrent use.
type Manager struct {
	storage store.SessionStorage
	logger  *logger.Logger

	// writeMu orders storage writes with the in-memory transitions they
	// belong to, so a purge can never be followed by a stale write.
	writeMu sync.Mutex

	mu      sync.RWMutex
	access  string
	refresh string
	user    *models.User
	state   State
	// gen changes whenever the session is replaced or purged.
	gen uint64

	flight singleflight.Group

	hooksMu   sync.RWMutex
	onExpired []func(error)
}

// NewManager returns an Anonymous manager persisting into storage.
func NewManager(storage store.SessionStorage, logger *logger.Logger) *Manager {
	return &Manager{
		storage: storage,
		logger:  logger,
		state:   Anonymous,
	}
}

// Token returns the current access token, or "" when anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether an access token is held.
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// User returns a copy of the cached profile, or nil.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// OnExpired registers fn to be called after a failed refresh purged the
// session. fn receives the error returned to the refreshing callers.
func (m *Manager) OnExpired(fn func(error)) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.onExpired = append(m.onExpired, fn)
}

// Start persists a freshly issued session and moves to Authenticated.
func (m *Manager) Start(ctx context.Context, tokens models.Tokens, user models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("error encoding user: %w", err)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	err = m.storage.Set(ctx,
		store.Entry{Key: models.SessionKeyAccessToken, Value: tokens.Access},
		store.Entry{Key: models.SessionKeyRefreshToken, Value: tokens.Refresh},
		store.Entry{Key: models.SessionKeyUser, Value: string(userJSON)},
	)
	if err != nil {
		m.logger.Err(err).Str("func", "Manager.Start").Msg("failed to persist session")
		return fmt.Errorf("error persisting session: %w", err)
	}

	m.mu.Lock()
	m.access = tokens.Access
	m.refresh = tokens.Refresh
	m.user = &user
	m.state = Authenticated
	m.gen++
	m.mu.Unlock()

	m.logger.Info().Str("func", "Manager.Start").Str("state", Authenticated.String()).Msg("session started")
	return nil
}

// SetTokens persists a new token pair. An empty refresh keeps the current
// refresh token.
func (m *Manager) SetTokens(ctx context.Context, access, refresh string) error {
	entries := []store.Entry{{Key: models.SessionKeyAccessToken, Value: access}}
	if refresh != "" {
		entries = append(entries, store.Entry{Key: models.SessionKeyRefreshToken, Value: refresh})
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.storage.Set(ctx, entries...); err != nil {
		m.logger.Err(err).Str("func", "Manager.SetTokens").Msg("failed to persist tokens")
		return fmt.Errorf("error persisting tokens: %w", err)
	}

	m.mu.Lock()
	m.access = access
	if refresh != "" {
		m.refresh = refresh
	}
	m.state = Authenticated
	m.mu.Unlock()

	return nil
}

// SetUser persists and caches the profile of the current session. It fails
// with ErrNoSession when the manager is Anonymous.
func (m *Manager) SetUser(ctx context.Context, user models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("error encoding user: %w", err)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if !m.IsAuthenticated() {
		return ErrNoSession
	}

	if err := m.storage.Set(ctx, store.Entry{Key: models.SessionKeyUser, Value: string(userJSON)}); err != nil {
		m.logger.Err(err).Str("func", "Manager.SetUser").Msg("failed to persist user")
		return fmt.Errorf("error persisting user: %w", err)
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()

	return nil
}

// Clear forgets the session in memory and removes every persisted entry.
// The manager is Anonymous afterwards even when the storage delete fails.
func (m *Manager) Clear(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.clearLocked(ctx)
}

// clearLocked requires writeMu.
func (m *Manager) clearLocked(ctx context.Context) error {
	m.mu.Lock()
	m.access = ""
	m.refresh = ""
	m.user = nil
	m.state = Anonymous
	m.gen++
	m.mu.Unlock()

	if err := m.storage.Delete(ctx, models.SessionKeys...); err != nil {
		m.logger.Err(err).Str("func", "Manager.clearLocked").Msg("failed to purge persisted session")
		return fmt.Errorf("error purging session: %w", err)
	}

	m.logger.Info().Str("func", "Manager.clearLocked").Str("state", Anonymous.String()).Msg("session cleared")
	return nil
}

// Restore loads the persisted session. It reports whether an access token
// was found. A user entry that cannot be decoded is dropped.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	access, err := m.get(ctx, models.SessionKeyAccessToken)
	if err != nil {
		return false, err
	}
	if access == "" {
		return false, nil
	}

	refresh, err := m.get(ctx, models.SessionKeyRefreshToken)
	if err != nil {
		return false, err
	}

	var user *models.User
	userJSON, err := m.get(ctx, models.SessionKeyUser)
	if err != nil {
		return false, err
	}
	if userJSON != "" {
		var u models.User
		if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
			m.logger.Warn().Err(err).Str("func", "Manager.Restore").Msg("dropping unreadable cached user")
		} else {
			user = &u
		}
	}

	m.writeMu.Lock()
	m.mu.Lock()
	m.access = access
	m.refresh = refresh
	m.user = user
	m.state = Authenticated
	m.gen++
	m.mu.Unlock()
	m.writeMu.Unlock()

	evt := m.logger.Info().Str("func", "Manager.Restore").Bool("has_user", user != nil)
	if exp, ok := utils.TokenExpiresAt(access); ok {
		evt = evt.Time("access_expires_at", exp)
	}
	evt.Msg("session restored")
	return true, nil
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	value, err := m.storage.Get(ctx, key)
	if errors.Is(err, store.ErrEntryNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", key, err)
	}
	return value, nil
}

// Refresh obtains a fresh access token after staleAccess was rejected.
//
// When the current token already differs from staleAccess it is returned
// without calling fn. Otherwise concurrent callers share one call to fn,
// which runs on a context detached from the caller's cancellation. On
// failure the session is purged, the expiry hooks run once, and every
// waiting caller receives an error wrapping ErrSessionExpired.
//
// A refresh that completes after the session was purged or replaced by a
// new login changes nothing: callers get ErrSessionExpired, or the token of
// the new session.
func (m *Manager) Refresh(ctx context.Context, staleAccess string, fn RefreshFunc) (string, error) {
	m.mu.RLock()
	current := m.access
	gen := m.gen
	m.mu.RUnlock()

	if current != "" && current != staleAccess {
		return current, nil
	}
	if current == "" {
		if staleAccess != "" {
			// purged by an earlier failed refresh
			return "", ErrSessionExpired
		}
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, ErrNoRefreshToken)
	}

	detached := context.WithoutCancel(ctx)
	ch := m.flight.DoChan(fmt.Sprintf("%s-%d", refreshFlightKey, gen), func() (any, error) {
		return m.refreshOnce(detached, staleAccess, fn)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (m *Manager) refreshOnce(ctx context.Context, staleAccess string, fn RefreshFunc) (string, error) {
	m.mu.Lock()
	if m.access != staleAccess {
		current := m.access
		m.mu.Unlock()
		if current == "" {
			return "", ErrSessionExpired
		}
		return current, nil
	}
	refreshToken := m.refresh
	gen := m.gen
	m.state = RefreshPending
	m.mu.Unlock()

	m.logger.Debug().Str("func", "Manager.refreshOnce").Str("state", RefreshPending.String()).Msg("refreshing access token")

	if refreshToken == "" {
		return m.expire(ctx, gen, ErrNoRefreshToken)
	}

	resp, err := fn(ctx, refreshToken)
	if err != nil {
		return m.expire(ctx, gen, err)
	}
	if resp.Access == "" {
		return m.expire(ctx, gen, ErrEmptyAccessToken)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if token, superseded := m.superseded(gen); superseded {
		m.logger.Debug().Str("func", "Manager.refreshOnce").Msg("session changed during refresh, dropping refreshed token")
		return token, supersededErr(token)
	}

	entries := []store.Entry{{Key: models.SessionKeyAccessToken, Value: resp.Access}}
	if resp.Refresh != "" {
		entries = append(entries, store.Entry{Key: models.SessionKeyRefreshToken, Value: resp.Refresh})
	}
	if err := m.storage.Set(ctx, entries...); err != nil {
		m.logger.Err(err).Str("func", "Manager.refreshOnce").Msg("failed to persist refreshed token, keeping it in memory")
	}

	m.mu.Lock()
	m.access = resp.Access
	if resp.Refresh != "" {
		m.refresh = resp.Refresh
	}
	m.state = Authenticated
	m.mu.Unlock()

	evt := m.logger.Info().Str("func", "Manager.refreshOnce").Str("state", Authenticated.String())
	if exp, ok := utils.TokenExpiresAt(resp.Access); ok {
		evt = evt.Time("access_expires_at", exp)
	}
	evt.Msg("access token refreshed")
	return resp.Access, nil
}

// superseded reports whether the session of generation gen has been purged
// or replaced, and returns the current access token if so.
func (m *Manager) superseded(gen uint64) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.gen == gen {
		return "", false
	}
	return m.access, true
}

func supersededErr(current string) error {
	if current == "" {
		return ErrSessionExpired
	}
	return nil
}

// expire purges the session of generation gen and runs the expiry hooks.
// A session that was already purged or replaced is left alone and no hook
// runs.
func (m *Manager) expire(ctx context.Context, gen uint64, cause error) (string, error) {
	m.writeMu.Lock()
	if token, superseded := m.superseded(gen); superseded {
		m.writeMu.Unlock()
		m.logger.Debug().Err(cause).Str("func", "Manager.expire").Msg("session changed during refresh, ignoring failure")
		return token, supersededErr(token)
	}

	m.logger.Warn().Err(cause).Str("func", "Manager.expire").Msg("token refresh failed, purging session")
	_ = m.clearLocked(ctx)
	m.writeMu.Unlock()

	err := fmt.Errorf("%w: %w", ErrSessionExpired, cause)

	m.hooksMu.RLock()
	hooks := slices.Clone(m.onExpired)
	m.hooksMu.RUnlock()
	for _, hook := range hooks {
		hook(err)
	}

	return "", err
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	// ErrSessionExpired is returned when the access token could not be
	// refreshed. The session has been purged when this error is returned.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoRefreshToken is the cause of ErrSessionExpired when no refresh
	// token is held.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrEmptyAccessToken is the cause of ErrSessionExpired when the refresh
	// endpoint answered without an access token.
	ErrEmptyAccessToken = errors.New("refresh returned an empty access token")

	// ErrNoSession is returned by operations that need an active session.
	ErrNoSession = errors.New("no active session")
)

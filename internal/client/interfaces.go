// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit or until ctx
	// is cancelled.
	Run(ctx context.Context) error
}

// UI is the interactive front end driven by [App].
type UI interface {
	// Run blocks until the user quits. authenticated selects the start page.
	Run(ctx context.Context, authenticated bool) error

	// NotifySessionExpired is called from any goroutine after the session
	// was purged because a token refresh failed.
	NotifySessionExpired(err error)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing the background jobs of
// the client. A Workers aggregate starts every registered job together and
// stops them in reverse order.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block: implementations spawn their own goroutine and keep
// running until ctx is cancelled or Stop is called. Stop blocks until the
// goroutine has exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

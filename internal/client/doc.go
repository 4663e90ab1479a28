// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It restores the persisted session, starts the background workers and runs
// the terminal UI until the user quits. A session that expires while the UI
// is open sends the user back to the login page.
package client

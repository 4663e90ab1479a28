// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoHandler = errors.New("fakeapi server: no HTTP handler configured")
	errNoAddress = errors.New("fakeapi server: listen address is empty")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks client input before it is sent to the backend.
//
// The backend owns validation. The client only rejects what it can tell is
// wrong without a round trip: missing required fields, malformed email
// addresses and documents the backend would refuse (non-PDF or over 10MB).
//
// Usage patterns:
//  1. Construct a Validator with [NewRequestValidator].
//  2. Inject it into services.
//  3. Call Validate with context, value, and optional field names to
//     restrict the check to those fields.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fakeapi implements an in-memory applicant-tracking backend that
// speaks the same REST contract as the production API.
//
// It backs the development server in cmd/fakeapi and end-to-end tests of the
// client. Accounts, applicants and uploaded documents live in process
// memory. Access and refresh tokens are HMAC-signed JWTs; verification and
// password reset links are logged instead of emailed.
package fakeapi

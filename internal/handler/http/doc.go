// Package http implements the REST transport of the development backend.
//
// It exposes route wiring, request handlers, and middleware for the
// applicant-tracking API contract. Request ids, access logging, response
// compression and bearer authentication are handled in this package before
// requests are delegated to the fakeapi services. Error bodies follow the
// shapes the client understands: {"error": ...}, {"detail": ...} and
// {"field": ["message", ...]}.
package http

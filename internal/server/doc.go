// Package server runs the development backend's HTTP server.
//
// It owns startup, signal handling, and graceful shutdown.
package server

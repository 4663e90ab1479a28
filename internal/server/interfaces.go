package server

// Server defines the lifecycle contract of the development backend.
//
// RunServer blocks until SIGTERM, SIGINT or SIGQUIT is received and the
// server has shut down; Shutdown stops it from another goroutine.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

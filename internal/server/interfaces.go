package server

// Server defines the lifecycle of the blob server.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT, or until the
	// listener fails.
	RunServer() error

	// Shutdown gracefully stops the server.
	Shutdown()
}

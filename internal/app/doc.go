// Package app wires the application together: configuration, logging,
// metrics, the generated baseline, the upload store, the service layer
// and the HTTP router. It owns the server lifecycle from startup through
// graceful shutdown.
package app

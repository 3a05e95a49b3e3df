package logging

import (
	"log/slog"
)

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("server")
//	log.Info("component initialized")
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithRequest creates a logger carrying the request id and route of one
// HTTP request.
//
// Example:
//
//	log := logging.WithRequest(id, r.Method, r.URL.Path)
//	log.Info("analyzed", "tokens", n)
func WithRequest(requestID, method, path string) *slog.Logger {
	return GetLogger().With("request_id", requestID, "method", method, "path", path)
}

// WithSource creates a logger describing the text being tokenized: where it
// came from and how large it is.
func WithSource(origin string, size int) *slog.Logger {
	return GetLogger().With("source", origin, "bytes", size)
}

// WithError creates a logger with error context.
// Use this when logging errors to include the error in structured format.
//
// Example:
//
//	log := logging.WithError(err)
//	log.Error("operation failed", "operation", "analyze")
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// Package logging provides a process-wide structured logger for sqlcompiler.
//
// The package wraps [log/slog] and exposes a single global logger instance
// that is initialized once and then retrieved via GetLogger. The server, the
// terminal UI and the command-line mode obtain their loggers through this
// package so that level, format and destination are controlled in one place.
//
// # Initialisation
//
// Call Init (or InitDefault for sensible defaults) once at program startup:
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON}); err != nil {
//	    log.Fatal(err)
//	}
//
// InitDefault writes INFO-level text logs to stdout. The terminal UI passes
// Config.Writer (a log file or io.Discard) so that logs never land on the
// alternate screen.
//
// # Retrieving the logger
//
//	logger := logging.GetLogger()
//	logger.Info("server listening", "addr", addr)
//
// If GetLogger is called before Init, a default logger is created lazily
// (via sync.Once).
//
// # Context helpers
//
//	log := logging.WithComponent("server")       // adds component field
//	log := logging.WithRequest(id, method, path) // adds request_id, method, path
//	log := logging.WithSource("stdin", n)        // adds source, bytes
package logging

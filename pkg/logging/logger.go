package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Process-wide logger state.
var (
	Logger   *slog.Logger
	loggerMu sync.RWMutex
	logFile  *os.File
	isInited bool
	initOnce sync.Once
)

// LogLevel represents logging verbosity
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// ParseLevel converts a flag value such as "debug" into a LogLevel.
// Unknown values fall back to LevelInfo.
func ParseLevel(s string) LogLevel {
	l := LogLevel(strings.ToUpper(strings.TrimSpace(s)))
	switch l {
	case LevelDebug, LevelWarn, LevelError:
		return l
	default:
		return LevelInfo
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Output formats accepted in Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects where log lines go and how they look. Writer wins over
// OutputPath; with neither set, logs go to stdout.
type Config struct {
	Level      LogLevel
	OutputPath string
	Format     string
	Writer     io.Writer
}

// Init installs the global logger. It must be called at most once per
// Close; a second call fails so that flags parsed in main are not silently
// replaced.
//
// Example:
//
//	logging.Init(logging.Config{
//	    Level:      logging.LevelInfo,
//	    OutputPath: "logs/sqlcompiler.log",
//	    Format:     logging.FormatJSON,
//	})
func Init(config Config) error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if isInited {
		return fmt.Errorf("logger already initialized; call Close() first to reinitialize")
	}

	handler, err := newHandler(config)
	if err != nil {
		return err
	}

	Logger = slog.New(handler)
	isInited = true
	return nil
}

func newHandler(config Config) (slog.Handler, error) {
	writer, err := openWriter(config)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: config.Level.slogLevel()}
	switch strings.ToLower(config.Format) {
	case FormatJSON:
		return slog.NewJSONHandler(writer, opts), nil
	case FormatText, "":
		return slog.NewTextHandler(writer, opts), nil
	default:
		closeLogFile()
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", config.Format, FormatText, FormatJSON)
	}
}

// openWriter resolves the destination. A file path has its directory
// created and is opened for append; the handle is kept for Close.
func openWriter(config Config) (io.Writer, error) {
	switch {
	case config.Writer != nil:
		return config.Writer, nil
	case config.OutputPath == "":
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logFile = file
	return file, nil
}

func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// InitDefault installs an INFO-level text logger on stdout unless a logger
// is already installed.
func InitDefault() {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if isInited {
		return
	}

	Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	isInited = true
}

// Close releases the log file, if any, and clears the global logger so
// Init may be called again. Calling it twice is harmless.
func Close() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if !isInited {
		return nil
	}

	err := closeLogFile()
	Logger = nil
	isInited = false
	initOnce = sync.Once{}
	return err
}

// GetLogger returns the installed logger, installing the default on first
// use when Init was never called.
func GetLogger() *slog.Logger {
	loggerMu.RLock()
	if isInited {
		logger := Logger
		loggerMu.RUnlock()
		return logger
	}
	loggerMu.RUnlock()

	initOnce.Do(InitDefault)

	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return Logger
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

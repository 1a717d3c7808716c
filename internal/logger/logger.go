// Package logger holds li's process logger.
// Logs go to stderr by default so the wrapped command's stdout stays clean.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // json, text
	Output string    // stdout, stderr, or file path
	Writer io.Writer // overrides Output when set
}

var (
	defaultLogger *slog.Logger
	// logFile is the file opened for Output, closed on re-Init or Close.
	logFile *os.File
)

func init() {
	defaultLogger = newStderrLogger()
}

func newStderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Init replaces the process logger with one built from cfg. A log file
// opened by a previous Init is closed.
func Init(cfg Config) error {
	var opened *os.File
	output := cfg.Writer
	if output == nil {
		switch strings.ToLower(cfg.Output) {
		case "", "stderr":
			output = os.Stderr
		case "stdout":
			output = os.Stdout
		default:
			f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return err
			}
			output = f
			opened = f
		}
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	defaultLogger = slog.New(handler)
	prev := logFile
	logFile = opened
	if prev != nil {
		return prev.Close()
	}
	return nil
}

// Close closes the log file, if any, and falls back to the stderr logger.
func Close() error {
	if logFile == nil {
		return nil
	}
	f := logFile
	logFile = nil
	defaultLogger = newStderrLogger()
	return f.Close()
}

// Logger returns the process logger
func Logger() *slog.Logger {
	return defaultLogger
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs at info level
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs at error level
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// WithChannel returns a logger tagged with a notification channel name
func WithChannel(name string) *slog.Logger {
	return defaultLogger.With("channel", name)
}

// Package logger provides structured logging for Visibility Doctor.
package logger

import (
	"log/slog"
	"os"
	"sync"
)

// Logger is the logging interface used throughout the application.
// SlogLogger implements it for production use; MockLogger for tests.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// SlogLogger is a Logger backed by log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewLogger creates a new slog-backed logger. Format is "text" or "json";
// anything else falls back to text.
func NewLogger(debug bool, format string) *SlogLogger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return &SlogLogger{logger: slog.New(handler)}
}

// Debug logs a debug message.
func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Info logs an info message.
func (l *SlogLogger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Warn logs a warning message.
func (l *SlogLogger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Error logs an error message.
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a new logger with additional attributes.
func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewLogger(false, "text")
)

// SetupLogger configures the global logger.
func SetupLogger(debug bool, format string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = NewLogger(debug, format)
}

// GetGlobalLogger returns the global logger instance.
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Debug logs a debug message on the global logger.
func Debug(msg string, args ...any) { GetGlobalLogger().Debug(msg, args...) }

// Info logs an info message on the global logger.
func Info(msg string, args ...any) { GetGlobalLogger().Info(msg, args...) }

// Warn logs a warning message on the global logger.
func Warn(msg string, args ...any) { GetGlobalLogger().Warn(msg, args...) }

// Error logs an error message on the global logger.
func Error(msg string, args ...any) { GetGlobalLogger().Error(msg, args...) }

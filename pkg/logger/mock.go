package logger

import (
	"fmt"
	"strings"
	"sync"
)

// MockLogger is a Logger implementation for testing.
type MockLogger struct {
	Messages *[]LogMessage
	attrs    []any
	mu       sync.Mutex
}

// LogMessage represents a logged message for testing.
type LogMessage struct {
	Level string
	Msg   string
	Args  []any
}

// NewMockLogger creates a new mock logger for testing.
func NewMockLogger() *MockLogger {
	messages := make([]LogMessage, 0)
	return &MockLogger{Messages: &messages}
}

func (m *MockLogger) log(level, msg string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	merged := args
	if len(m.attrs) > 0 {
		merged = make([]any, 0, len(m.attrs)+len(args))
		merged = append(merged, m.attrs...)
		merged = append(merged, args...)
	}
	*m.Messages = append(*m.Messages, LogMessage{Level: level, Msg: msg, Args: merged})
}

// Debug logs a debug message.
func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg, args) }

// Info logs an info message.
func (m *MockLogger) Info(msg string, args ...any) { m.log("INFO", msg, args) }

// Warn logs a warning message.
func (m *MockLogger) Warn(msg string, args ...any) { m.log("WARN", msg, args) }

// Error logs an error message.
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg, args) }

// With returns a new logger with additional attributes. The message slice is
// shared so assertions see output from derived loggers too.
func (m *MockLogger) With(args ...any) Logger {
	m.mu.Lock()
	defer m.mu.Unlock()

	newAttrs := make([]any, 0, len(m.attrs)+len(args))
	newAttrs = append(newAttrs, m.attrs...)
	newAttrs = append(newAttrs, args...)

	return &MockLogger{Messages: m.Messages, attrs: newAttrs}
}

// HasMessage checks if a message with the given level and message exists.
func (m *MockLogger) HasMessage(level, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, lm := range *m.Messages {
		if lm.Level == level && lm.Msg == msg {
			return true
		}
	}
	return false
}

// HasMessageContaining checks if a message with the given level containing the substring exists.
func (m *MockLogger) HasMessageContaining(level, substring string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, lm := range *m.Messages {
		if lm.Level == level && strings.Contains(lm.Msg, substring) {
			return true
		}
	}
	return false
}

// Clear clears all logged messages.
func (m *MockLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.Messages = make([]LogMessage, 0)
}

// String returns a string representation of all logged messages.
func (m *MockLogger) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var b strings.Builder
	for _, msg := range *m.Messages {
		fmt.Fprintf(&b, "[%s] %s %v\n", msg.Level, msg.Msg, msg.Args)
	}
	return b.String()
}

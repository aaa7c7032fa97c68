package log

import (
	"fmt"
	"strings"
)

// LogLevel represents logging severity.
type LogLevel int

const (
	// LogLevelDebug for prompts, raw responses and tool inputs.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo for iteration flow and final answers.
	LogLevelInfo
	// LogLevelWarn for recoverable errors fed back to the model.
	LogLevelWarn
	// LogLevelError for failed runs.
	LogLevelError
	// LogLevelNone disables all logging.
	LogLevelNone
)

// Logger is the printf-style logger used across reactloop.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// LevelLogger is a Logger whose level can be changed at runtime.
type LevelLogger interface {
	Logger
	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// String returns the string representation of LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// ParseLevel parses a level name such as "debug" or "WARN". "none", "off" and "disable"
// all map to LogLevelNone.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none", "off", "disable":
		return LogLevelNone, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NopLogger is a logger that doesn't log anything.
type NopLogger struct{}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (*NopLogger) Debug(string, ...any) {}
func (*NopLogger) Info(string, ...any)  {}
func (*NopLogger) Warn(string, ...any)  {}
func (*NopLogger) Error(string, ...any) {}

var _ Logger = (*NopLogger)(nil)

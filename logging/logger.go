package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
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
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name (any case) onto a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return LogLevelWarn
	case "error", "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger defines the minimal logging interface for zep-mcp. This allows
// users to provide their own logger implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// RemoteCallLogger is implemented by loggers that record the latency and
// outcome of remote memory-store calls. The zep client uses it when the
// configured logger supports it.
type RemoteCallLogger interface {
	LogRemoteCall(operation string, dur time.Duration, success bool, err error)
}

// ServerLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods. It should be cheap to copy via With* methods.
type ServerLogger struct {
	logger    *slog.Logger
	level     LogLevel
	context   map[string]interface{}
	component string
	sessionID string
	userID    string
}

// LoggerConfig configures construction of a ServerLogger.
type LoggerConfig struct {
	Level       LogLevel
	Format      string // json or text
	Output      io.Writer
	AddSource   bool
	Component   string
	SessionID   string
	UserID      string
	CustomAttrs map[string]interface{}
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
// Output goes to stderr: stdout belongs to the stdio transport.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stderr, CustomAttrs: map[string]interface{}{}}
}

// NewLogger builds a ServerLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *ServerLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	return &ServerLogger{logger: slog.New(handler), level: cfg.Level, context: map[string]interface{}{}, component: cfg.Component, sessionID: cfg.SessionID, userID: cfg.UserID}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *ServerLogger) clone() *ServerLogger {
	nl := *l
	nl.context = map[string]interface{}{}
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithContext adds a key/value attribute that will be attached to every log entry.
func (l *ServerLogger) WithContext(key string, value interface{}) *ServerLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

// WithComponent sets the logical component (tool, recall, zep, server).
func (l *ServerLogger) WithComponent(c string) *ServerLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithSession attaches session and user identifiers.
func (l *ServerLogger) WithSession(sessionID, userID string) *ServerLogger {
	nl := l.clone()
	nl.sessionID = sessionID
	nl.userID = userID
	return nl
}

// buildKV renders the logger's sticky context as alternating key/value
// pairs in slog's loose form.
func (l *ServerLogger) buildKV() []any {
	kv := make([]any, 0, len(l.context)*2+6)
	if l.component != "" {
		kv = append(kv, "component", l.component)
	}
	if l.sessionID != "" {
		kv = append(kv, "session_id", l.sessionID)
	}
	if l.userID != "" {
		kv = append(kv, "user_id", l.userID)
	}
	for k, v := range l.context {
		kv = append(kv, k, v)
	}
	return kv
}

// log emits one entry. args are slog-style key/value pairs appended after
// the logger's sticky context.
func (l *ServerLogger) log(level slog.Level, allowed bool, msg string, args ...interface{}) {
	if !allowed {
		return
	}
	l.logger.Log(context.Background(), level, msg, append(l.buildKV(), args...)...)
}

// Debug logs at debug level.
func (l *ServerLogger) Debug(msg string, args ...interface{}) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *ServerLogger) Info(msg string, args ...interface{}) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *ServerLogger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *ServerLogger) Error(msg string, args ...interface{}) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// LogToolCall records execution details for an MCP tool invocation.
func (l *ServerLogger) LogToolCall(tool string, dur time.Duration, success bool, err error) {
	kv := append(l.buildKV(), "tool_name", tool, "duration", dur, "success", success)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	level := slog.LevelInfo
	msg := "Tool execution completed"
	if !success {
		level = slog.LevelError
		msg = "Tool execution failed"
	}
	l.logger.Log(context.Background(), level, msg, kv...)
}

// LogRemoteCall records latency and outcome for a remote memory-store call.
func (l *ServerLogger) LogRemoteCall(operation string, dur time.Duration, success bool, err error) {
	kv := append(l.buildKV(), "operation", operation, "duration", dur, "success", success)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	level := slog.LevelInfo
	msg := "Remote call completed"
	if !success {
		level = slog.LevelWarn
		msg = "Remote call failed"
	}
	l.logger.Log(context.Background(), level, msg, kv...)
}

// NoOpLogger discards all log messages. Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

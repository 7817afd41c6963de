package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel) (*ServerLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewLogger(&LoggerConfig{Level: level, Format: "json", Output: buf})
	return logger, buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[0], "expected at least one log line")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":    LogLevelDebug,
		"DEBUG":    LogLevelDebug,
		"WARN":     LogLevelWarn,
		"warning":  LogLevelWarn,
		"ERROR":    LogLevelError,
		"INFO":     LogLevelInfo,
		"CRITICAL": LogLevelInfo, // unmapped names fall back to info
		"":         LogLevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestServerLoggerRendersKeyValuePairs(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.Info("resolved user", "user_id", "alice", "attempts", 2)

	entry := lastEntry(t, buf)
	assert.Equal(t, "resolved user", entry["msg"])
	assert.Equal(t, "alice", entry["user_id"])
	assert.Equal(t, float64(2), entry["attempts"])
	assert.NotContains(t, buf.String(), "%!")
}

func TestServerLoggerLevelGating(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("visible")
	assert.Equal(t, "visible", lastEntry(t, buf)["msg"])
}

func TestServerLoggerContextCloning(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	scoped := logger.WithComponent("recall").
		WithSession("s1", "alice").
		WithContext("query", "login")
	scoped.Info("searching")

	entry := lastEntry(t, buf)
	assert.Equal(t, "recall", entry["component"])
	assert.Equal(t, "s1", entry["session_id"])
	assert.Equal(t, "alice", entry["user_id"])
	assert.Equal(t, "login", entry["query"])

	// The parent logger is unaffected by the scoped clone.
	buf.Reset()
	logger.Info("plain")
	entry = lastEntry(t, buf)
	assert.NotContains(t, entry, "component")
	assert.NotContains(t, entry, "session_id")
}

func TestLogToolCall(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.LogToolCall("create_session", 5*time.Millisecond, true, nil)
	entry := lastEntry(t, buf)
	assert.Equal(t, "Tool execution completed", entry["msg"])
	assert.Equal(t, "create_session", entry["tool_name"])
	assert.Equal(t, true, entry["success"])

	buf.Reset()
	logger.LogToolCall("create_session", time.Millisecond, false, fmt.Errorf("handler panicked"))
	entry = lastEntry(t, buf)
	assert.Equal(t, "Tool execution failed", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "handler panicked", entry["error"])
}

func TestLogRemoteCall(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.LogRemoteCall("GET /api/v2/users/alice", 3*time.Millisecond, true, nil)
	entry := lastEntry(t, buf)
	assert.Equal(t, "Remote call completed", entry["msg"])
	assert.Equal(t, "GET /api/v2/users/alice", entry["operation"])

	buf.Reset()
	logger.LogRemoteCall("GET /api/v2/users/ghost", time.Millisecond, false, fmt.Errorf("status 404"))
	entry = lastEntry(t, buf)
	assert.Equal(t, "Remote call failed", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "status 404", entry["error"])
}

func TestServerLoggerImplementsRemoteCallLogger(t *testing.T) {
	var l Logger = NewLogger(nil)
	_, ok := l.(RemoteCallLogger)
	assert.True(t, ok)

	l = NoOpLogger{}
	_, ok = l.(RemoteCallLogger)
	assert.False(t, ok)
}

func TestSlogAdapter(t *testing.T) {
	buf := &bytes.Buffer{}
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(buf, nil)))

	adapter.Info("hello", "k", "v")

	entry := lastEntry(t, buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "v", entry["k"])
}

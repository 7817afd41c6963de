package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Transport values accepted for MCP_TRANSPORT.
const (
	TransportSSE   = "sse"
	TransportStdio = "stdio"
)

// Settings holds every tunable consumed by the server. Load applies the
// defaults before validation.
type Settings struct {
	// Zep Cloud configuration.
	ZepAPIKey  string
	ZepBaseURL string

	// MCP server configuration.
	Host      string
	Port      int
	Transport string

	// User identity configuration.
	AllowedUserIDs []string
	DefaultUserID  string

	// Observability.
	LogLevel  string
	LogFormat string
	Debug     bool

	// Performance.
	RateLimitPerMinute int
	CacheTTL           time.Duration
	RequestTimeout     time.Duration
}

// Load reads settings from the process environment, applies defaults and
// validates. It is the only place configuration invariants are checked;
// everything downstream may assume a valid Settings.
func Load() (*Settings, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Settings, error) {
	s := &Settings{
		ZepAPIKey:          getenv("ZEP_API_KEY"),
		ZepBaseURL:         withDefault(getenv("ZEP_BASE_URL"), "https://api.getzep.com"),
		Host:               withDefault(getenv("MCP_HOST"), "0.0.0.0"),
		Transport:          strings.ToLower(withDefault(getenv("MCP_TRANSPORT"), TransportSSE)),
		DefaultUserID:      getenv("ZEP_DEFAULT_USER_ID"),
		LogLevel:           strings.ToUpper(withDefault(getenv("LOG_LEVEL"), "INFO")),
		LogFormat:          strings.ToLower(withDefault(getenv("LOG_FORMAT"), "json")),
		Debug:              parseBool(getenv("DEBUG")),
		RateLimitPerMinute: parseInt(getenv("RATE_LIMIT_PER_MINUTE"), 100),
		CacheTTL:           time.Duration(parseInt(getenv("CACHE_TTL_SECONDS"), 300)) * time.Second,
		RequestTimeout:     time.Duration(parseInt(getenv("REQUEST_TIMEOUT_SECONDS"), 30)) * time.Second,
	}
	s.Port = parseInt(getenv("MCP_PORT"), 8052)
	s.AllowedUserIDs = splitCSV(getenv("ZEP_USER_IDS"))

	if len(s.AllowedUserIDs) == 0 && s.DefaultUserID != "" {
		// A lone default is implicitly its own allow-list.
		s.AllowedUserIDs = []string{s.DefaultUserID}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.ZepAPIKey == "" {
		return fmt.Errorf("ZEP_API_KEY is required")
	}
	if s.Transport != TransportSSE && s.Transport != TransportStdio {
		return fmt.Errorf("invalid transport: %s", s.Transport)
	}
	switch s.LogLevel {
	case "DEBUG", "INFO", "WARNING", "WARN", "ERROR", "CRITICAL":
	default:
		return fmt.Errorf("invalid log level: %s", s.LogLevel)
	}
	if len(s.AllowedUserIDs) == 0 {
		return fmt.Errorf("ZEP_USER_IDS must list at least one user ID")
	}
	if s.DefaultUserID == "" {
		return fmt.Errorf("ZEP_DEFAULT_USER_ID is required")
	}
	if !s.IsValidUserID(s.DefaultUserID) {
		return fmt.Errorf("default user ID %q must be in allowed user IDs: [%s]", s.DefaultUserID, strings.Join(s.AllowedUserIDs, ", "))
	}
	return nil
}

// IsValidUserID reports whether a user ID is in the allowed list.
func (s *Settings) IsValidUserID(userID string) bool {
	for _, id := range s.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseInt(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package identity

import (
	"fmt"
	"strings"

	"github.com/Whaleylaw/zep-mcp/logging"
)

// InvalidIdentityError reports a strict-mode resolution against a value
// outside the allow-list. It carries the rejected value and the allow-list
// so callers can surface both.
type InvalidIdentityError struct {
	UserID  string
	Allowed []string
}

// Error implements the error interface.
func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("user ID %q is not in allowed list: [%s]", e.UserID, strings.Join(e.Allowed, ", "))
}

// Guard resolves user identities against a fixed allow-list with a single
// designated default. The default is guaranteed to belong to the allow-list
// by NewGuard; that invariant is enforced once, at configuration time, not
// per call.
type Guard struct {
	allowed   []string
	defaultID string
	logger    logging.Logger
}

// NewGuard constructs a Guard. It fails when the allow-list is empty or the
// default identity is not a member of it.
func NewGuard(allowed []string, defaultID string, logger logging.Logger) (*Guard, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("identity allow-list must not be empty")
	}
	if !contains(allowed, defaultID) {
		return nil, fmt.Errorf("default user ID %q must be in allowed user IDs: [%s]", defaultID, strings.Join(allowed, ", "))
	}
	return &Guard{allowed: append([]string(nil), allowed...), defaultID: defaultID, logger: logger}, nil
}

// Default returns the configured default identity.
func (g *Guard) Default() string { return g.defaultID }

// Allowed returns a copy of the allow-list.
func (g *Guard) Allowed() []string { return append([]string(nil), g.allowed...) }

// IsValid reports whether the candidate belongs to the allow-list.
func (g *Guard) IsValid(userID string) bool { return contains(g.allowed, userID) }

// Resolve is the strict resolution primitive. An empty candidate yields the
// default; a listed candidate is returned unchanged; anything else fails
// with *InvalidIdentityError.
func (g *Guard) Resolve(candidate string) (string, error) {
	if candidate == "" {
		return g.defaultID, nil
	}
	if !g.IsValid(candidate) {
		return "", &InvalidIdentityError{UserID: candidate, Allowed: g.Allowed()}
	}
	return candidate, nil
}

// ResolveLenient is the tool-facing resolution mode: off-list candidates
// are silently replaced by the default with a warning, and no failure is
// ever surfaced to the caller.
func (g *Guard) ResolveLenient(candidate string) string {
	if candidate == "" {
		return g.defaultID
	}
	if !g.IsValid(candidate) {
		g.logger.Warn("invalid user ID, substituting default", "user_id", candidate, "default", g.defaultID)
		return g.defaultID
	}
	return candidate
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

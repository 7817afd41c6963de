package core

import "time"

// Message is a single role-tagged entry in a session's conversation log.
type Message struct {
	Role      string         `json:"role"`
	RoleType  string         `json:"role_type,omitempty"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
}

// UserRecord is the remote store's view of a user.
type UserRecord struct {
	UserID    string         `json:"user_id"`
	FirstName string         `json:"first_name,omitempty"`
	LastName  string         `json:"last_name,omitempty"`
	Email     string         `json:"email,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
}

// SessionRecord is the remote store's view of a session. Metadata is kept
// in its loose map form; use MetadataFromMap to interpret it.
type SessionRecord struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// CreatedTime parses the record's creation timestamp. The zero time (with
// ok=false) is returned when the field is absent or unparseable; callers
// treat such records as undated rather than failing.
func (r SessionRecord) CreatedTime() (time.Time, bool) {
	if r.CreatedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Fact is a single extracted fact about a user or session. Rating is nil
// when the store supplied the fact as bare text; such facts bypass any
// rating filter.
type Fact struct {
	Fact      string         `json:"fact"`
	Rating    *float64       `json:"rating"`
	Source    string         `json:"source,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Summary is a store-generated conversation summary.
type Summary struct {
	Content string `json:"content"`
}

// Memory is the composite returned for a session: message log plus any
// derived context, facts and summary the store has produced.
type Memory struct {
	Messages []Message `json:"messages"`
	Context  string    `json:"context,omitempty"`
	Facts    []Fact    `json:"facts,omitempty"`
	Summary  *Summary  `json:"summary,omitempty"`
}

// SearchResult is one scored hit from a session-scoped search.
type SearchResult struct {
	Message   Message `json:"message"`
	Score     float64 `json:"score"`
	SessionID string  `json:"session_id,omitempty"`
}

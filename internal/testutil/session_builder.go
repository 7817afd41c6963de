package testutil

import (
	"time"

	"github.com/Whaleylaw/zep-mcp/core"
)

// SessionRecordBuilder helps construct remote session records with fluent
// chaining for tests. Example:
//
//	rec := NewSessionRecordBuilder("cursor_auth_2025_03_09").
//		User("alice").
//		ContextType(core.ContextCoding).
//		Project("zep-mcp").
//		CreatedAgo(48 * time.Hour).
//		Build()
type SessionRecordBuilder struct {
	id       string
	userID   string
	metadata core.SessionMetadata
	created  time.Time
}

// NewSessionRecordBuilder creates a builder for a session record with the
// given id. Metadata defaults to a normal-privacy general session created now.
func NewSessionRecordBuilder(id string) *SessionRecordBuilder {
	return &SessionRecordBuilder{
		id:      id,
		userID:  "alice",
		created: time.Now(),
		metadata: core.SessionMetadata{
			Platform:     core.PlatformWebClaude,
			ContextType:  core.ContextGeneral,
			PrivacyLevel: core.PrivacyNormal,
		},
	}
}

// User sets the owning user id (chainable).
func (b *SessionRecordBuilder) User(userID string) *SessionRecordBuilder {
	b.userID = userID
	return b
}

// Platform sets the metadata platform (chainable).
func (b *SessionRecordBuilder) Platform(p core.Platform) *SessionRecordBuilder {
	b.metadata.Platform = p
	return b
}

// ContextType sets the metadata context type (chainable).
func (b *SessionRecordBuilder) ContextType(ct core.ContextType) *SessionRecordBuilder {
	b.metadata.ContextType = ct
	return b
}

// Context sets the free-text context description (chainable).
func (b *SessionRecordBuilder) Context(context string) *SessionRecordBuilder {
	b.metadata.Context = context
	return b
}

// Project sets the metadata project (chainable).
func (b *SessionRecordBuilder) Project(project string) *SessionRecordBuilder {
	b.metadata.Project = project
	return b
}

// Tags sets the metadata tags (chainable).
func (b *SessionRecordBuilder) Tags(tags ...string) *SessionRecordBuilder {
	b.metadata.Tags = tags
	return b
}

// Sensitive marks the session privacy level sensitive (chainable).
func (b *SessionRecordBuilder) Sensitive() *SessionRecordBuilder {
	b.metadata.PrivacyLevel = core.PrivacySensitive
	return b
}

// CreatedAgo backdates the record's creation time (chainable).
func (b *SessionRecordBuilder) CreatedAgo(d time.Duration) *SessionRecordBuilder {
	b.created = time.Now().Add(-d)
	return b
}

// Undated clears the creation timestamp entirely (chainable).
func (b *SessionRecordBuilder) Undated() *SessionRecordBuilder {
	b.created = time.Time{}
	return b
}

// Build returns the assembled core.SessionRecord.
func (b *SessionRecordBuilder) Build() core.SessionRecord {
	b.metadata.CreatedAt = ""
	created := ""
	if !b.created.IsZero() {
		created = b.created.Format(time.RFC3339)
		b.metadata.CreatedAt = created
	}
	return core.SessionRecord{
		SessionID: b.id,
		UserID:    b.userID,
		Metadata:  b.metadata.ToMap(),
		CreatedAt: created,
	}
}

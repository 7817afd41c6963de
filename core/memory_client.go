package core

import "context"

// CreateUserRequest carries the optional profile fields accepted by the
// remote store when registering a user.
type CreateUserRequest struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Metadata  map[string]any
}

// MemoryClient is the remote conversational-memory collaborator. It is a
// black box to this layer: only request/response shapes are assumed, never
// transport or persistence details. Implementations back it with the Zep
// Cloud REST API; tests back it with mocks.
//
// Every method may fail; callers convert failures into degraded or
// error-shaped results rather than letting them propagate (never crash the
// tool call). Retries, if any, belong to the implementation, not callers.
type MemoryClient interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserRecord, error)
	GetUser(ctx context.Context, userID string) (*UserRecord, error)
	UpdateUser(ctx context.Context, userID string, metadata map[string]any) (*UserRecord, error)
	CreateSession(ctx context.Context, sessionID, userID string, metadata map[string]any) (*SessionRecord, error)
	ListSessions(ctx context.Context, userID string, limit int) ([]SessionRecord, error)
	AppendMessages(ctx context.Context, sessionID string, messages []Message) (int, error)
	GetSessionMemory(ctx context.Context, sessionID string, limit int) (*Memory, error)
	SearchSession(ctx context.Context, sessionID, query, scope string, limit int) ([]SearchResult, error)
	GetUserFacts(ctx context.Context, userID string) ([]Fact, error)
}

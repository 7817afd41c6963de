package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/identity"
	"github.com/Whaleylaw/zep-mcp/logging"
	"github.com/Whaleylaw/zep-mcp/session"
)

// CreateSessionTool creates a session with a caller-chosen id. The user id
// is forced to the configured default when it is not on the allow-list.
type CreateSessionTool struct {
	client core.MemoryClient
	guard  *identity.Guard
	logger logging.Logger
}

// NewCreateSessionTool constructs the tool.
func NewCreateSessionTool(client core.MemoryClient, guard *identity.Guard, logger logging.Logger) *CreateSessionTool {
	return &CreateSessionTool{client: client, guard: guard, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *CreateSessionTool) Definition() mcp.Tool {
	return mcp.NewTool("create_session",
		mcp.WithDescription("Create a new conversation session bound to a user."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Unique session identifier")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Owning user")),
		mcp.WithObject("metadata", mcp.Description("Session metadata; JSON text is parsed, other text becomes {description: text}")),
	)
}

// Handle executes the tool call.
func (t *CreateSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	userID := req.GetString("user_id", "")
	if !t.guard.IsValid(userID) {
		t.logger.Warn("overriding user id for session creation", "user_id", userID, "default", t.guard.Default())
		userID = t.guard.Default()
	}

	metadata := core.NormalizeMetadata(rawArgument(req, "metadata"))
	if metadata == nil {
		metadata = map[string]any{}
	}

	created, err := t.client.CreateSession(ctx, sessionID, userID, metadata)
	if err != nil {
		t.logger.Error("error creating session", "session_id", sessionID, "error", err)
		return failure(err), nil
	}

	t.logger.Info("created session", "session_id", created.SessionID, "user_id", created.UserID)
	return jsonResult(map[string]any{
		"success": true,
		"session": map[string]any{
			"session_id": created.SessionID,
			"user_id":    created.UserID,
			"metadata":   created.Metadata,
			"created_at": created.CreatedAt,
		},
	}), nil
}

// SmartSessionTool creates a session with a synthesized identifier and
// composed metadata, optionally seeding initial messages.
type SmartSessionTool struct {
	client   core.MemoryClient
	guard    *identity.Guard
	namer    *session.Namer
	composer *session.Composer
	logger   logging.Logger
}

// NewSmartSessionTool constructs the tool.
func NewSmartSessionTool(client core.MemoryClient, guard *identity.Guard, namer *session.Namer, composer *session.Composer, logger logging.Logger) *SmartSessionTool {
	return &SmartSessionTool{client: client, guard: guard, namer: namer, composer: composer, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *SmartSessionTool) Definition() mcp.Tool {
	return mcp.NewTool("create_smart_session",
		mcp.WithDescription("Create a session with a platform-aware generated identifier and rich metadata."),
		mcp.WithString("context", mcp.Required(), mcp.Description("Brief description of the session context")),
		mcp.WithString("context_type", mcp.Description("coding | general | research | deployment | debugging | documentation")),
		mcp.WithString("project", mcp.Description("Project name if applicable")),
		mcp.WithString("privacy_level", mcp.Description("normal | sensitive")),
		mcp.WithArray("tags", mcp.Description("Additional tags for the session")),
		mcp.WithArray("initial_messages", mcp.Description("Optional initial messages ({role, content})")),
		mcp.WithString("user_id", mcp.Description("Specific user to own the session")),
	)
}

// Handle executes the tool call.
func (t *SmartSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := t.guard.ResolveLenient(req.GetString("user_id", ""))
	contextDesc := req.GetString("context", "")
	contextType := core.ParseContextType(req.GetString("context_type", ""))
	project := req.GetString("project", "")

	sessionID := t.namer.Name(contextDesc, contextType, project)
	metadata := t.composer.Compose(contextDesc, contextType, project,
		req.GetString("privacy_level", ""), req.GetStringSlice("tags", nil))

	created, err := t.client.CreateSession(ctx, sessionID, userID, metadata.ToMap())
	if err != nil {
		t.logger.Error("error creating smart session", "session_id", sessionID, "error", err)
		return failure(err), nil
	}

	if initial := messageArgument(req, "initial_messages"); len(initial) > 0 {
		if _, err := t.client.AppendMessages(ctx, sessionID, initial); err != nil {
			t.logger.Error("error adding initial messages", "session_id", sessionID, "error", err)
			return failure(err), nil
		}
	}

	t.logger.Info("created smart session", "session_id", sessionID, "user_id", userID)
	return jsonResult(map[string]any{
		"success": true,
		"session": map[string]any{
			"session_id":   created.SessionID,
			"user_id":      userID,
			"metadata":     metadata.ToMap(),
			"platform":     metadata.Platform.String(),
			"context_type": metadata.ContextType.String(),
			"project":      metadata.Project,
		},
	}), nil
}

// ListSessionsTool lists a user's sessions. Failures yield an empty list.
type ListSessionsTool struct {
	client core.MemoryClient
	guard  *identity.Guard
	logger logging.Logger
}

// NewListSessionsTool constructs the tool.
func NewListSessionsTool(client core.MemoryClient, guard *identity.Guard, logger logging.Logger) *ListSessionsTool {
	return &ListSessionsTool{client: client, guard: guard, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *ListSessionsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_sessions",
		mcp.WithDescription("List a user's conversation sessions."),
		mcp.WithString("user_id", mcp.Description("User whose sessions to list (defaults to the configured user)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return")),
	)
}

// Handle executes the tool call.
func (t *ListSessionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := t.guard.ResolveLenient(req.GetString("user_id", ""))
	limit := req.GetInt("limit", 50)

	sessions, err := t.client.ListSessions(ctx, userID, limit)
	if err != nil {
		t.logger.Error("error listing sessions", "user_id", userID, "error", err)
		return jsonResult([]any{}), nil
	}

	out := make([]map[string]any, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, map[string]any{
			"session_id": s.SessionID,
			"user_id":    s.UserID,
			"metadata":   s.Metadata,
			"created_at": s.CreatedAt,
			"updated_at": s.UpdatedAt,
		})
	}
	t.logger.Info("retrieved sessions", "user_id", userID, "count", len(out))
	return jsonResult(out), nil
}

// messageArgument parses a loose message list argument into core messages.
// Roles default to "user"; entries that are not maps are skipped.
func messageArgument(req mcp.CallToolRequest, key string) []core.Message {
	raw, ok := rawArgument(req, key).([]any)
	if !ok {
		return nil
	}
	out := make([]core.Message, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		msg := core.Message{Role: "user"}
		if role, ok := m["role"].(string); ok && role != "" {
			msg.Role = role
		}
		if content, ok := m["content"].(string); ok {
			msg.Content = content
		}
		if md, ok := m["metadata"].(map[string]any); ok {
			msg.Metadata = md
		}
		out = append(out, msg)
	}
	return out
}

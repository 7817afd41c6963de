package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/identity"
	"github.com/Whaleylaw/zep-mcp/logging"
)

// AddMemoryTool appends conversation messages to a session's memory.
type AddMemoryTool struct {
	client core.MemoryClient
	logger logging.Logger
}

// NewAddMemoryTool constructs the tool.
func NewAddMemoryTool(client core.MemoryClient, logger logging.Logger) *AddMemoryTool {
	return &AddMemoryTool{client: client, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *AddMemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("add_memory",
		mcp.WithDescription("Add conversation messages to a session's memory."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Target session")),
		mcp.WithArray("messages", mcp.Required(), mcp.Description("Messages ({role, content, metadata?}); role defaults to user")),
	)
}

// Handle executes the tool call.
func (t *AddMemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	messages := messageArgument(req, "messages")

	added, err := t.client.AppendMessages(ctx, sessionID, messages)
	if err != nil {
		t.logger.Error("error adding memory", "session_id", sessionID, "error", err)
		return failure(err), nil
	}

	t.logger.Info("added messages to session", "session_id", sessionID, "count", added)
	return jsonResult(map[string]any{
		"success":        true,
		"messages_added": added,
		"session_id":     sessionID,
	}), nil
}

// GetMemoryTool retrieves a session's memory: messages plus any derived
// context, facts (rating-filtered) and summary.
type GetMemoryTool struct {
	client core.MemoryClient
	logger logging.Logger
}

// NewGetMemoryTool constructs the tool.
func NewGetMemoryTool(client core.MemoryClient, logger logging.Logger) *GetMemoryTool {
	return &GetMemoryTool{client: client, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *GetMemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_memory",
		mcp.WithDescription("Retrieve memory for a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to read")),
		mcp.WithNumber("min_rating", mcp.Description("Minimum fact rating to include (facts without a rating always pass)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of messages to return")),
	)
}

// Handle executes the tool call.
func (t *GetMemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	minRating := req.GetFloat("min_rating", 0)
	limit := req.GetInt("limit", 50)

	memory, err := t.client.GetSessionMemory(ctx, sessionID, limit)
	if err != nil {
		t.logger.Error("error getting memory", "session_id", sessionID, "error", err)
		return failure(err), nil
	}

	payload := map[string]any{
		"success":    true,
		"session_id": sessionID,
		"messages":   messagePayload(memory.Messages, limit),
	}
	if memory.Context != "" {
		payload["context"] = memory.Context
	}
	if len(memory.Facts) > 0 {
		payload["facts"] = factPayload(memory.Facts, minRating)
	}
	if memory.Summary != nil {
		payload["summary"] = map[string]any{"content": memory.Summary.Content}
	}

	t.logger.Info("retrieved memory", "session_id", sessionID, "messages", len(memory.Messages))
	return jsonResult(payload), nil
}

// SearchMemoryTool searches within a session's memory. Failures yield an
// empty result list rather than an error payload.
type SearchMemoryTool struct {
	client core.MemoryClient
	logger logging.Logger
}

// NewSearchMemoryTool constructs the tool.
func NewSearchMemoryTool(client core.MemoryClient, logger logging.Logger) *SearchMemoryTool {
	return &SearchMemoryTool{client: client, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *SearchMemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("search_memory",
		mcp.WithDescription("Search within a session's memory."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to search")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query text")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
		mcp.WithString("search_scope", mcp.Description("Search scope (defaults to messages)")),
	)
}

// Handle executes the tool call.
func (t *SearchMemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	query := req.GetString("query", "")
	limit := req.GetInt("limit", 10)
	scope := req.GetString("search_scope", "messages")

	results, err := t.client.SearchSession(ctx, sessionID, query, scope, limit)
	if err != nil {
		t.logger.Error("error searching memory", "session_id", sessionID, "error", err)
		return jsonResult([]any{}), nil
	}

	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		out = append(out, map[string]any{
			"message": map[string]any{
				"role":     r.Message.Role,
				"content":  r.Message.Content,
				"metadata": r.Message.Metadata,
			},
			"score":      r.Score,
			"session_id": r.SessionID,
		})
	}
	t.logger.Info("searched session memory", "session_id", sessionID, "query", query, "hits", len(out))
	return jsonResult(out), nil
}

// GetFactsTool retrieves extracted facts about a user. Failures yield an
// empty list.
type GetFactsTool struct {
	client core.MemoryClient
	guard  *identity.Guard
	logger logging.Logger
}

// NewGetFactsTool constructs the tool.
func NewGetFactsTool(client core.MemoryClient, guard *identity.Guard, logger logging.Logger) *GetFactsTool {
	return &GetFactsTool{client: client, guard: guard, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *GetFactsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_facts",
		mcp.WithDescription("Retrieve extracted facts about a user."),
		mcp.WithString("user_id", mcp.Description("User whose facts to read (defaults to the configured user)")),
		mcp.WithNumber("min_rating", mcp.Description("Minimum fact rating to include")),
	)
}

// Handle executes the tool call.
func (t *GetFactsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := t.guard.ResolveLenient(req.GetString("user_id", ""))
	minRating := req.GetFloat("min_rating", 0)

	facts, err := t.client.GetUserFacts(ctx, userID)
	if err != nil {
		t.logger.Error("error getting facts", "user_id", userID, "error", err)
		return jsonResult([]any{}), nil
	}

	out := factPayload(facts, minRating)
	t.logger.Info("retrieved facts", "user_id", userID, "count", len(out))
	return jsonResult(out), nil
}

// messagePayload renders up to limit messages in the wire payload shape.
func messagePayload(messages []core.Message, limit int) []map[string]any {
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	out := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		out = append(out, map[string]any{
			"role":      m.Role,
			"role_type": m.RoleType,
			"content":   m.Content,
			"metadata":  m.Metadata,
		})
	}
	return out
}

// factPayload filters facts by rating. Facts the store supplied without a
// rating bypass the filter entirely.
func factPayload(facts []core.Fact, minRating float64) []map[string]any {
	out := make([]map[string]any, 0, len(facts))
	for _, f := range facts {
		if f.Rating != nil && *f.Rating < minRating {
			continue
		}
		entry := map[string]any{
			"fact":       f.Fact,
			"rating":     f.Rating,
			"created_at": f.CreatedAt,
		}
		if f.Source != "" {
			entry["source"] = f.Source
		}
		if len(f.Metadata) > 0 {
			entry["metadata"] = f.Metadata
		}
		out = append(out, entry)
	}
	return out
}

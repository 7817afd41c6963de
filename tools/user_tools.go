package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/identity"
	"github.com/Whaleylaw/zep-mcp/logging"
)

// CreateUserTool registers a user in the remote memory store. Off-list
// user ids are leniently replaced by the configured default.
type CreateUserTool struct {
	client core.MemoryClient
	guard  *identity.Guard
	logger logging.Logger
}

// NewCreateUserTool constructs the tool.
func NewCreateUserTool(client core.MemoryClient, guard *identity.Guard, logger logging.Logger) *CreateUserTool {
	return &CreateUserTool{client: client, guard: guard, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *CreateUserTool) Definition() mcp.Tool {
	return mcp.NewTool("create_user",
		mcp.WithDescription("Create a new user in the memory store."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Unique user identifier")),
		mcp.WithString("first_name", mcp.Description("User's first name")),
		mcp.WithString("last_name", mcp.Description("User's last name")),
		mcp.WithString("email", mcp.Description("User's email address")),
		mcp.WithObject("metadata", mcp.Description("Additional user metadata")),
	)
}

// Handle executes the tool call.
func (t *CreateUserTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := t.guard.ResolveLenient(req.GetString("user_id", ""))

	user, err := t.client.CreateUser(ctx, core.CreateUserRequest{
		UserID:    userID,
		FirstName: req.GetString("first_name", ""),
		LastName:  req.GetString("last_name", ""),
		Email:     req.GetString("email", ""),
		Metadata:  core.NormalizeMetadata(rawArgument(req, "metadata")),
	})
	if err != nil {
		t.logger.Error("error creating user", "user_id", userID, "error", err)
		return failure(err), nil
	}

	t.logger.Info("created user", "user_id", user.UserID)
	return jsonResult(map[string]any{
		"success": true,
		"user": map[string]any{
			"user_id":    user.UserID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"metadata":   user.Metadata,
			"created_at": user.CreatedAt,
		},
	}), nil
}

// UpdateUserMetadataTool shallow-merges new metadata over a user's existing
// metadata. New keys win on conflict.
type UpdateUserMetadataTool struct {
	client core.MemoryClient
	guard  *identity.Guard
	logger logging.Logger
}

// NewUpdateUserMetadataTool constructs the tool.
func NewUpdateUserMetadataTool(client core.MemoryClient, guard *identity.Guard, logger logging.Logger) *UpdateUserMetadataTool {
	return &UpdateUserMetadataTool{client: client, guard: guard, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *UpdateUserMetadataTool) Definition() mcp.Tool {
	return mcp.NewTool("update_user_metadata",
		mcp.WithDescription("Merge new metadata into an existing user's metadata. New keys win on conflict."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User to update")),
		mcp.WithObject("metadata", mcp.Required(), mcp.Description("Metadata to merge")),
	)
}

// Handle executes the tool call: fetch, shallow-merge, write back.
func (t *UpdateUserMetadataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := t.guard.ResolveLenient(req.GetString("user_id", ""))
	delta := core.NormalizeMetadata(rawArgument(req, "metadata"))

	user, err := t.client.GetUser(ctx, userID)
	if err != nil {
		t.logger.Error("error fetching user for metadata update", "user_id", userID, "error", err)
		return failure(err), nil
	}

	merged := make(map[string]any, len(user.Metadata)+len(delta))
	for k, v := range user.Metadata {
		merged[k] = v
	}
	for k, v := range delta {
		merged[k] = v
	}

	updated, err := t.client.UpdateUser(ctx, userID, merged)
	if err != nil {
		t.logger.Error("error updating user metadata", "user_id", userID, "error", err)
		return failure(err), nil
	}

	t.logger.Info("updated user metadata", "user_id", userID)
	return jsonResult(map[string]any{
		"success": true,
		"user": map[string]any{
			"user_id":  updated.UserID,
			"metadata": updated.Metadata,
		},
	}), nil
}

// rawArgument fetches an argument without type coercion, or nil.
func rawArgument(req mcp.CallToolRequest, key string) any {
	args := req.GetArguments()
	if args == nil {
		return nil
	}
	return args[key]
}

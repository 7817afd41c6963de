package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Whaleylaw/zep-mcp/identity"
	"github.com/Whaleylaw/zep-mcp/logging"
)

func okHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(`{"success":true}`), nil
}

func requestFor(userID string) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	if userID != "" {
		req.Params.Arguments = map[string]any{"user_id": userID}
	}
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func wrapped(t *testing.T, rpm int) server.ToolHandlerFunc {
	t.Helper()
	guard, err := identity.NewGuard([]string{"alice", "bob"}, "alice", logging.NoOpLogger{})
	require.NoError(t, err)
	return rateLimitMiddleware(rpm, guard)(okHandler)
}

func TestRateLimitAllowsWithinBudget(t *testing.T) {
	handler := wrapped(t, 60)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		result, err := handler(ctx, requestFor("alice"))
		require.NoError(t, err)
		payload := resultText(t, result)
		assert.Equal(t, true, payload["success"], "call %d should pass", i)
	}
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	handler := wrapped(t, 2)
	ctx := context.Background()

	// Burst equals the per-minute budget; the third call in the same
	// instant must be rejected.
	for i := 0; i < 2; i++ {
		result, err := handler(ctx, requestFor("alice"))
		require.NoError(t, err)
		assert.Equal(t, true, resultText(t, result)["success"])
	}

	result, err := handler(ctx, requestFor("alice"))
	require.NoError(t, err)
	payload := resultText(t, result)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "rate limit exceeded", payload["error"])
	assert.Equal(t, "alice", payload["user_id"])
}

func TestRateLimitKeysPerUser(t *testing.T) {
	handler := wrapped(t, 1)
	ctx := context.Background()

	result, err := handler(ctx, requestFor("alice"))
	require.NoError(t, err)
	assert.Equal(t, true, resultText(t, result)["success"])

	// alice is exhausted, bob is not.
	result, err = handler(ctx, requestFor("alice"))
	require.NoError(t, err)
	assert.Equal(t, false, resultText(t, result)["success"])

	result, err = handler(ctx, requestFor("bob"))
	require.NoError(t, err)
	assert.Equal(t, true, resultText(t, result)["success"])
}

func TestRateLimitDisabledWhenZero(t *testing.T) {
	handler := wrapped(t, 0)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		result, err := handler(ctx, requestFor(""))
		require.NoError(t, err)
		assert.Equal(t, true, resultText(t, result)["success"])
	}
}

package server

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Whaleylaw/zep-mcp/logging"
)

// toolLoggingMiddleware records every tool invocation's name, duration and
// outcome, scoped to the session and user the call names. Handlers report
// remote failures as structured payloads with a nil error, so success here
// means the handler itself completed.
func toolLoggingMiddleware(logger *logging.ServerLogger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)

			scoped := logger
			sessionID := req.GetString("session_id", "")
			userID := req.GetString("user_id", "")
			if sessionID != "" || userID != "" {
				scoped = logger.WithSession(sessionID, userID)
			}
			scoped.LogToolCall(req.Params.Name, time.Since(start), err == nil, err)
			return result, err
		}
	}
}

package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals a payload into a text tool result. Marshal failures
// are impossible for the map/struct payloads built here, but degrade to an
// error payload rather than a panic just in case.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultText(`{"success":false,"error":"failed to encode result"}`)
	}
	return mcp.NewToolResultText(string(data))
}

// failure builds the standard {success:false, error} payload.
func failure(err error) *mcp.CallToolResult {
	return jsonResult(map[string]any{"success": false, "error": err.Error()})
}

// RateLimited builds the payload returned when a caller exhausts its
// per-minute request budget.
func RateLimited(userID string, rpm int) *mcp.CallToolResult {
	return jsonResult(map[string]any{
		"success":             false,
		"error":               "rate limit exceeded",
		"user_id":             userID,
		"limit_per_minute":    rpm,
		"retry_after_seconds": 60,
	})
}

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Whaleylaw/zep-mcp/logging"
	"github.com/Whaleylaw/zep-mcp/recall"
)

// RelevantContextTool returns combined context from the current session and
// its related siblings, with cross-platform usage statistics.
type RelevantContextTool struct {
	aggregator *recall.Aggregator
	logger     logging.Logger
}

// NewRelevantContextTool constructs the tool.
func NewRelevantContextTool(aggregator *recall.Aggregator, logger logging.Logger) *RelevantContextTool {
	return &RelevantContextTool{aggregator: aggregator, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *RelevantContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_relevant_context",
		mcp.WithDescription("Get relevant context from the current session and related sessions across platforms."),
		mcp.WithString("current_session_id", mcp.Required(), mcp.Description("The session requesting context")),
		mcp.WithString("query", mcp.Description("Optional search query for finding relevant memories")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of related-session results")),
		mcp.WithNumber("lookback_days", mcp.Description("How many days back to consider (default 30)")),
		mcp.WithString("user_id", mcp.Description("Specific user to aggregate for")),
	)
}

// Handle executes the tool call. The aggregator already guarantees a
// best-effort result, so this handler never fails.
func (t *RelevantContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := t.aggregator.Aggregate(ctx,
		req.GetString("current_session_id", ""),
		req.GetString("query", ""),
		req.GetInt("limit", 10),
		req.GetInt("lookback_days", recall.DefaultLookbackDays),
		req.GetString("user_id", ""),
	)
	if result.Error != "" {
		t.logger.Warn("context aggregation degraded", "error", result.Error)
	}
	return jsonResult(result), nil
}

// PlatformSummaryTool summarizes recent activity across platforms.
type PlatformSummaryTool struct {
	aggregator *recall.Aggregator
	logger     logging.Logger
}

// NewPlatformSummaryTool constructs the tool.
func NewPlatformSummaryTool(aggregator *recall.Aggregator, logger logging.Logger) *PlatformSummaryTool {
	return &PlatformSummaryTool{aggregator: aggregator, logger: logger}
}

// Definition describes the tool to MCP clients.
func (t *PlatformSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_platform_summary",
		mcp.WithDescription("Summarize session activity across platforms."),
		mcp.WithString("platform", mcp.Description("Restrict the summary to one platform")),
		mcp.WithNumber("days", mcp.Description("Number of days to look back (default 7)")),
		mcp.WithString("user_id", mcp.Description("Specific user to summarize")),
	)
}

// Handle executes the tool call.
func (t *PlatformSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := t.aggregator.PlatformSummary(ctx,
		req.GetString("platform", ""),
		req.GetInt("days", recall.DefaultSummaryDays),
		req.GetString("user_id", ""),
	)
	if result.Error != "" {
		t.logger.Warn("platform summary degraded", "error", result.Error)
	}
	return jsonResult(result), nil
}

package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/Whaleylaw/zep-mcp/config"
	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/identity"
	"github.com/Whaleylaw/zep-mcp/logging"
	"github.com/Whaleylaw/zep-mcp/recall"
	"github.com/Whaleylaw/zep-mcp/session"
	"github.com/Whaleylaw/zep-mcp/tools"
	"github.com/Whaleylaw/zep-mcp/zep"
)

// Version is set at build time via ldflags.
var Version = "dev"

// serverName identifies this server to MCP clients.
const serverName = "zep-memory-server"

// New creates and configures the MCP server with all tools registered.
// This is the single place where all dependencies are resolved; each
// subsystem gets a component-scoped logger. The provided client may be
// nil, in which case one is built from the settings (wrapped in the TTL
// cache).
func New(cfg *config.Settings, logger *logging.ServerLogger, client core.MemoryClient) (*server.MCPServer, error) {
	if logger == nil {
		logger = logging.NewLogger(nil)
	}

	if client == nil {
		base := zep.NewClient(cfg.ZepBaseURL, cfg.ZepAPIKey,
			zep.WithTimeout(cfg.RequestTimeout),
			zep.WithLogger(logger.WithComponent("zep")),
		)
		client = zep.NewCachedClient(base, cfg.CacheTTL)
	}

	guard, err := identity.NewGuard(cfg.AllowedUserIDs, cfg.DefaultUserID, logger.WithComponent("identity"))
	if err != nil {
		return nil, err
	}

	namer := session.NewNamer()
	composer := session.NewComposer()
	aggregator := recall.New(client, guard, logger.WithComponent("recall"))

	s := server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(toolLoggingMiddleware(logger.WithComponent("tools"))),
		server.WithToolHandlerMiddleware(rateLimitMiddleware(cfg.RateLimitPerMinute, guard)),
		server.WithInstructions(serverInstructions()),
	)

	toolLogger := logger.WithComponent("tools")

	// User management.
	createUser := tools.NewCreateUserTool(client, guard, toolLogger)
	s.AddTool(createUser.Definition(), createUser.Handle)

	updateUser := tools.NewUpdateUserMetadataTool(client, guard, toolLogger)
	s.AddTool(updateUser.Definition(), updateUser.Handle)

	// Session management.
	createSession := tools.NewCreateSessionTool(client, guard, toolLogger)
	s.AddTool(createSession.Definition(), createSession.Handle)

	smartSession := tools.NewSmartSessionTool(client, guard, namer, composer, toolLogger)
	s.AddTool(smartSession.Definition(), smartSession.Handle)

	listSessions := tools.NewListSessionsTool(client, guard, toolLogger)
	s.AddTool(listSessions.Definition(), listSessions.Handle)

	// Memory access.
	addMemory := tools.NewAddMemoryTool(client, toolLogger)
	s.AddTool(addMemory.Definition(), addMemory.Handle)

	getMemory := tools.NewGetMemoryTool(client, toolLogger)
	s.AddTool(getMemory.Definition(), getMemory.Handle)

	searchMemory := tools.NewSearchMemoryTool(client, toolLogger)
	s.AddTool(searchMemory.Definition(), searchMemory.Handle)

	getFacts := tools.NewGetFactsTool(client, guard, toolLogger)
	s.AddTool(getFacts.Definition(), getFacts.Handle)

	// Cross-session context.
	relevantContext := tools.NewRelevantContextTool(aggregator, toolLogger)
	s.AddTool(relevantContext.Definition(), relevantContext.Handle)

	platformSummary := tools.NewPlatformSummaryTool(aggregator, toolLogger)
	s.AddTool(platformSummary.Definition(), platformSummary.Handle)

	return s, nil
}

func serverInstructions() string {
	return `This server provides persistent conversational memory across platforms.
Use create_smart_session to start sessions with platform-aware identifiers,
add_memory to record conversation turns, and get_relevant_context to pull
related memories from the user's other sessions. Sessions marked with
privacy_level "sensitive" are never shared across sessions.`
}

// Command zep-mcp runs the Zep memory MCP server over stdio or SSE.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Whaleylaw/zep-mcp/config"
	"github.com/Whaleylaw/zep-mcp/logging"
	"github.com/Whaleylaw/zep-mcp/server"
)

func main() {
	// Local development reads a .env file; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = logging.LogLevelDebug
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.LogFormat,
		Output:    os.Stderr,
		Component: "server",
	}).WithContext("transport", cfg.Transport)

	s, err := server.New(cfg, logger, nil)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	switch cfg.Transport {
	case config.TransportStdio:
		logger.Info("starting stdio transport")
		if err := mcpserver.ServeStdio(s); err != nil {
			logger.Error("stdio server stopped", "error", err)
			os.Exit(1)
		}
	case config.TransportSSE:
		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		logger.Info("starting SSE transport", "addr", addr)
		sse := mcpserver.NewSSEServer(s)
		if err := sse.Start(addr); err != nil {
			logger.Error("SSE server stopped", "error", err)
			os.Exit(1)
		}
	}
}

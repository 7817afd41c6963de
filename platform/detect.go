package platform

import (
	"os"
	"strings"

	"github.com/Whaleylaw/zep-mcp/core"
)

// Environment variables consulted by the detector, in precedence order.
const (
	envCursorSession = "CURSOR_SESSION"
	envClaudeDesktop = "CLAUDE_DESKTOP"
	envClaudeCode    = "CLAUDE_CODE"
	envParentProcess = "PARENT_PROCESS"
)

// Detect infers the hosting platform from the process environment and
// argv[0]. It never fails and never returns core.PlatformUnknown; callers
// needing a "not yet detected" sentinel use that value themselves.
func Detect() core.Platform {
	argv0 := ""
	if len(os.Args) > 0 {
		argv0 = os.Args[0]
	}
	return detect(os.Getenv, argv0)
}

// detect is the testable core of Detect, parameterized over the
// environment lookup and executable name. First match wins.
func detect(getenv func(string) string, argv0 string) core.Platform {
	// Explicit environment flags.
	if getenv(envCursorSession) != "" {
		return core.PlatformCursor
	}
	if getenv(envClaudeDesktop) != "" {
		return core.PlatformClaudeDesktop
	}
	if getenv(envClaudeCode) != "" {
		return core.PlatformClaudeCode
	}

	// Executable name.
	name := strings.ToLower(argv0)
	if strings.Contains(name, "cursor") {
		return core.PlatformCursor
	}
	if strings.Contains(name, "claude") && strings.Contains(name, "desktop") {
		return core.PlatformClaudeDesktop
	}
	if strings.Contains(name, "claude") && strings.Contains(name, "code") {
		return core.PlatformClaudeCode
	}

	// Parent process hint.
	parent := strings.ToLower(getenv(envParentProcess))
	if strings.Contains(parent, "cursor") {
		return core.PlatformCursor
	}
	if strings.Contains(parent, "claude") {
		if strings.Contains(parent, "desktop") {
			return core.PlatformClaudeDesktop
		}
		if strings.Contains(parent, "code") {
			return core.PlatformClaudeCode
		}
	}

	return core.PlatformWebClaude
}

package core

// Platform identifies the front-end environment hosting the server process.
// It is derived per call from process signals and embedded in session
// metadata; it is never persisted as its own entity.
type Platform string

const (
	// PlatformCursor is the Cursor editor.
	PlatformCursor Platform = "cursor"
	// PlatformClaudeDesktop is the Claude desktop application.
	PlatformClaudeDesktop Platform = "claude_desktop"
	// PlatformClaudeCode is the Claude Code CLI.
	PlatformClaudeCode Platform = "claude_code"
	// PlatformWebClaude is the browser client, used as the detection fallback.
	PlatformWebClaude Platform = "web_claude"
	// PlatformUnknown is a sentinel for callers that need an explicit
	// "not yet detected" value. The detector never returns it.
	PlatformUnknown Platform = "unknown"
)

// String returns the wire representation of the platform.
func (p Platform) String() string { return string(p) }

// ContextType is a coarse classification of a session's purpose, used to
// drive cross-session relevance heuristics.
type ContextType string

const (
	// ContextCoding marks implementation work.
	ContextCoding ContextType = "coding"
	// ContextGeneral is the default classification.
	ContextGeneral ContextType = "general"
	// ContextResearch marks exploratory or investigative sessions.
	ContextResearch ContextType = "research"
	// ContextDeployment marks release and operations work.
	ContextDeployment ContextType = "deployment"
	// ContextDebugging marks failure investigation.
	ContextDebugging ContextType = "debugging"
	// ContextDocumentation marks writing or reading docs.
	ContextDocumentation ContextType = "documentation"
)

// String returns the wire representation of the context type.
func (c ContextType) String() string { return string(c) }

// ParseContextType maps free-form input onto the closed ContextType set.
// Absent or unrecognized input degrades to ContextGeneral, never an error.
func ParseContextType(s string) ContextType {
	switch ContextType(s) {
	case ContextCoding, ContextGeneral, ContextResearch, ContextDeployment, ContextDebugging, ContextDocumentation:
		return ContextType(s)
	default:
		return ContextGeneral
	}
}

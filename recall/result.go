package recall

// MessageExcerpt is a trimmed view of one conversation message.
type MessageExcerpt struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CurrentSessionExcerpt is the requesting session's own recent memory: at
// most the last 20 messages plus the store summary when present. Empty when
// the current session could not be fetched.
type CurrentSessionExcerpt struct {
	SessionID string           `json:"session_id,omitempty"`
	Messages  []MessageExcerpt `json:"messages,omitempty"`
	Summary   string           `json:"summary,omitempty"`
}

// MemorySnippet is one scored search hit from a related session.
type MemorySnippet struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// RelatedSession is a context-related sibling session, with any relevant
// memory snippets a query search surfaced.
type RelatedSession struct {
	SessionID        string          `json:"session_id"`
	Platform         string          `json:"platform"`
	Context          string          `json:"context"`
	RelevantMemories []MemorySnippet `json:"relevant_memories,omitempty"`
}

// CrossPlatformInsights summarizes usage across the owner's full session
// list, not just the recent or related subset.
type CrossPlatformInsights struct {
	PlatformsActive    []string `json:"platforms_active"`
	ProjectsInProgress []string `json:"projects_in_progress"`
	ContextTypes       []string `json:"context_types"`
	TotalSessions      int      `json:"total_sessions"`
	RecentSessions     int      `json:"recent_sessions"`
}

// AggregateResult is the composite returned by Aggregate. Error, when set,
// marks a degraded result (the session listing failed); everything gathered
// before the failure is still present.
type AggregateResult struct {
	CurrentSession  CurrentSessionExcerpt  `json:"current_session"`
	RelatedSessions []RelatedSession       `json:"related_sessions"`
	Insights        *CrossPlatformInsights `json:"cross_platform_insights,omitempty"`
	Error           string                 `json:"error,omitempty"`
}

package recall

import (
	"context"

	"github.com/Whaleylaw/zep-mcp/core"
)

// DefaultSummaryDays is the lookback applied to platform summaries when
// the caller does not supply one.
const DefaultSummaryDays = 7

// PlatformStats aggregates a single platform's activity in the window.
type PlatformStats struct {
	Sessions int      `json:"sessions"`
	Contexts []string `json:"contexts"`
	Projects []string `json:"projects"`
}

// PlatformSummaryResult is the per-platform activity breakdown.
type PlatformSummaryResult struct {
	PeriodDays    int                      `json:"period_days"`
	Platforms     map[string]PlatformStats `json:"platforms"`
	TotalSessions int                      `json:"total_sessions"`
	UserID        string                   `json:"user_id,omitempty"`
	Error         string                   `json:"error,omitempty"`
}

// PlatformSummary summarizes session activity across platforms within the
// last days (default 7), optionally filtered to a single platform. The
// identity is resolved leniently; a failed listing yields an error-shaped
// result, never a fault.
func (a *Aggregator) PlatformSummary(ctx context.Context, platformFilter string, days int, userID string) *PlatformSummaryResult {
	if days <= 0 {
		days = DefaultSummaryDays
	}
	resolvedID := a.guard.ResolveLenient(userID)
	result := &PlatformSummaryResult{PeriodDays: days, Platforms: map[string]PlatformStats{}}

	sessions, err := a.client.ListSessions(ctx, resolvedID, 0)
	if err != nil {
		a.logger.Error("could not list sessions for platform summary", "user_id", resolvedID, "error", err)
		result.Error = err.Error()
		return result
	}
	result.UserID = resolvedID

	cutoff := a.now().AddDate(0, 0, -days)
	contexts := map[string]map[string]struct{}{}
	projects := map[string]map[string]struct{}{}
	counts := map[string]int{}

	for _, rec := range sessions {
		if created, ok := rec.CreatedTime(); ok && created.Before(cutoff) {
			continue
		}
		md := core.MetadataFromMap(rec.Metadata)
		p := md.Platform.String()
		if platformFilter != "" && p != platformFilter {
			continue
		}
		counts[p]++
		if contexts[p] == nil {
			contexts[p] = map[string]struct{}{}
			projects[p] = map[string]struct{}{}
		}
		contexts[p][md.ContextType.String()] = struct{}{}
		if md.Project != "" {
			projects[p][md.Project] = struct{}{}
		}
	}

	for p, n := range counts {
		result.Platforms[p] = PlatformStats{
			Sessions: n,
			Contexts: sortedKeys(contexts[p]),
			Projects: sortedKeys(projects[p]),
		}
		result.TotalSessions += n
	}
	return result
}

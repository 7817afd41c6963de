package recall

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Whaleylaw/zep-mcp/affinity"
	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/identity"
	"github.com/Whaleylaw/zep-mcp/logging"
)

const (
	// maxCurrentMessages caps the current-session excerpt.
	maxCurrentMessages = 20
	// maxSearchSessions bounds how many related sessions are searched.
	maxSearchSessions = 5
	// searchLimit is the per-session search result cap sent to the store.
	searchLimit = 3
	// snippetsPerSession further caps hits assembled into the result.
	snippetsPerSession = 2

	// DefaultLookbackDays is the recency horizon applied when the caller
	// does not supply one.
	DefaultLookbackDays = 30
)

// Aggregator orchestrates cross-session context assembly against the
// remote memory store.
type Aggregator struct {
	client core.MemoryClient
	guard  *identity.Guard
	logger logging.Logger
	now    func() time.Time
}

// AggregatorOption customizes an Aggregator.
type AggregatorOption func(*Aggregator)

// WithClock overrides the clock used for the lookback cutoff (tests).
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) { a.now = now }
}

// New constructs an Aggregator. A nil logger defaults to NoOpLogger.
func New(client core.MemoryClient, guard *identity.Guard, logger logging.Logger, opts ...AggregatorOption) *Aggregator {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	a := &Aggregator{client: client, guard: guard, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate assembles relevant context for currentSessionID. query is
// optional; when supplied, up to 5 related sessions are searched for
// matching memories. limit caps the number of related-session excerpts
// (<=0 means no cap). lookbackDays bounds candidate recency (<=0 applies
// the default of 30). userID is resolved leniently.
//
// The returned result is always non-nil and never accompanied by an error:
// partial failures appear as empty sections or a populated Error field.
func (a *Aggregator) Aggregate(ctx context.Context, currentSessionID, query string, limit, lookbackDays int, userID string) *AggregateResult {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	resolvedID := a.guard.ResolveLenient(userID)
	result := &AggregateResult{RelatedSessions: []RelatedSession{}}

	// Current session memory. A missing current session must not abort
	// the aggregation.
	if memory, err := a.client.GetSessionMemory(ctx, currentSessionID, 0); err != nil {
		a.logger.Warn("could not get current session memory", "session_id", currentSessionID, "error", err)
	} else {
		result.CurrentSession = excerptCurrent(currentSessionID, memory)
	}

	// Full session listing. Without it neither affinity filtering nor the
	// usage statistics are possible, so this failure degrades the whole
	// operation to an error-shaped result.
	allSessions, err := a.client.ListSessions(ctx, resolvedID, 0)
	if err != nil {
		a.logger.Error("could not list sessions", "user_id", resolvedID, "error", err)
		result.Error = err.Error()
		return result
	}

	cutoff := a.now().AddDate(0, 0, -lookbackDays)
	var currentMeta core.SessionMetadata
	recent := make([]core.SessionRecord, 0, len(allSessions))
	for _, rec := range allSessions {
		if rec.SessionID == currentSessionID {
			currentMeta = core.MetadataFromMap(rec.Metadata)
			continue
		}
		if created, ok := rec.CreatedTime(); ok && created.Before(cutoff) {
			continue
		}
		recent = append(recent, rec)
	}

	var related []core.SessionRecord
	for _, rec := range recent {
		if affinity.Related(currentMeta, core.MetadataFromMap(rec.Metadata)) {
			related = append(related, rec)
		}
	}

	snippets := a.searchRelated(ctx, related, query)

	for i, rec := range related {
		if limit > 0 && len(result.RelatedSessions) >= limit {
			break
		}
		md := core.MetadataFromMap(rec.Metadata)
		result.RelatedSessions = append(result.RelatedSessions, RelatedSession{
			SessionID:        rec.SessionID,
			Platform:         md.Platform.String(),
			Context:          orUnknown(md.Context),
			RelevantMemories: snippets[i],
		})
	}

	result.Insights = insights(allSessions, len(recent))
	return result
}

// searchRelated runs the bounded per-session searches. Sessions beyond the
// first maxSearchSessions are skipped entirely. The searches are
// independent, so they are issued concurrently with results slotted by
// index; a failed search simply leaves its slot empty.
func (a *Aggregator) searchRelated(ctx context.Context, related []core.SessionRecord, query string) map[int][]MemorySnippet {
	snippets := make(map[int][]MemorySnippet)
	if query == "" || len(related) == 0 {
		return snippets
	}

	n := len(related)
	if n > maxSearchSessions {
		n = maxSearchSessions
	}

	results := make([][]MemorySnippet, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int, sessionID string) {
			defer wg.Done()
			hits, err := a.client.SearchSession(ctx, sessionID, query, "messages", searchLimit)
			if err != nil {
				a.logger.Debug("could not search session", "session_id", sessionID, "error", err)
				return
			}
			for j, hit := range hits {
				if j >= snippetsPerSession {
					break
				}
				results[i] = append(results[i], MemorySnippet{Content: hit.Message.Content, Score: hit.Score})
			}
		}(i, related[i].SessionID)
	}
	wg.Wait()

	for i, hits := range results {
		if len(hits) > 0 {
			snippets[i] = hits
		}
	}
	return snippets
}

// excerptCurrent trims a memory to the last maxCurrentMessages messages
// plus the summary when present.
func excerptCurrent(sessionID string, memory *core.Memory) CurrentSessionExcerpt {
	excerpt := CurrentSessionExcerpt{SessionID: sessionID, Messages: []MessageExcerpt{}}
	msgs := memory.Messages
	if len(msgs) > maxCurrentMessages {
		msgs = msgs[len(msgs)-maxCurrentMessages:]
	}
	for _, m := range msgs {
		excerpt.Messages = append(excerpt.Messages, MessageExcerpt{Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	if memory.Summary != nil {
		excerpt.Summary = memory.Summary.Content
	}
	return excerpt
}

// insights computes cross-platform usage statistics over the full session
// list. Distinct values are sorted for deterministic output.
func insights(all []core.SessionRecord, recentCount int) *CrossPlatformInsights {
	platforms := map[string]struct{}{}
	projects := map[string]struct{}{}
	contexts := map[string]struct{}{}
	for _, rec := range all {
		if len(rec.Metadata) == 0 {
			continue
		}
		md := core.MetadataFromMap(rec.Metadata)
		platforms[md.Platform.String()] = struct{}{}
		if md.Project != "" {
			projects[md.Project] = struct{}{}
		}
		contexts[md.ContextType.String()] = struct{}{}
	}
	return &CrossPlatformInsights{
		PlatformsActive:    sortedKeys(platforms),
		ProjectsInProgress: sortedKeys(projects),
		ContextTypes:       sortedKeys(contexts),
		TotalSessions:      len(all),
		RecentSessions:     recentCount,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

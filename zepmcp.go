// Package zepmcp provides a high-level façade over the session-identity and
// context-affinity layer for a remote Zep memory store. Most applications
// interact with this package by:
//  1. Creating a ZepMCP via New() with at least an API key and allowed user IDs
//  2. Starting sessions with StartSession (platform-aware identifiers and metadata)
//  3. Recording turns with AddMemory and recalling with RelevantContext
//
// The façade delegates remote access to zep.Client (wrapped in a TTL cache)
// while keeping setup ergonomics concise. Applications that want to expose
// the same operations over MCP use the server package instead; both share
// the components wired here.
package zepmcp

import (
	"context"
	"time"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/identity"
	"github.com/Whaleylaw/zep-mcp/logging"
	"github.com/Whaleylaw/zep-mcp/recall"
	"github.com/Whaleylaw/zep-mcp/session"
	"github.com/Whaleylaw/zep-mcp/zep"
)

// Options configures the ZepMCP instance.
type Options struct {
	// Zep Cloud credentials and endpoint.
	APIKey  string
	BaseURL string

	// Identity allow-list. DefaultUserID must appear in AllowedUserIDs.
	AllowedUserIDs []string
	DefaultUserID  string

	// CacheTTLSeconds controls how long session listings, memory and facts
	// are cached. Zero disables caching.
	CacheTTLSeconds int

	// Client overrides the remote client (defaults to zep.Client against
	// BaseURL). Useful for tests.
	Client core.MemoryClient

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ZepMCP is the high-level façade aggregating the remote client and the
// naming, metadata and recall components.
type ZepMCP struct {
	client     core.MemoryClient
	guard      *identity.Guard
	namer      *session.Namer
	composer   *session.Composer
	aggregator *recall.Aggregator
}

// New creates a new ZepMCP instance with optional overrides.
func New(optFns ...func(o *Options)) (*ZepMCP, error) {
	opts := Options{
		BaseURL: "https://api.getzep.com",
		Logger:  logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	client := opts.Client
	if client == nil {
		base := zep.NewClient(opts.BaseURL, opts.APIKey, zep.WithLogger(opts.Logger))
		if opts.CacheTTLSeconds > 0 {
			client = zep.NewCachedClient(base, time.Duration(opts.CacheTTLSeconds)*time.Second)
		} else {
			client = base
		}
	}

	guard, err := identity.NewGuard(opts.AllowedUserIDs, opts.DefaultUserID, opts.Logger)
	if err != nil {
		return nil, err
	}

	return &ZepMCP{
		client:     client,
		guard:      guard,
		namer:      session.NewNamer(),
		composer:   session.NewComposer(),
		aggregator: recall.New(client, guard, opts.Logger),
	}, nil
}

// StartSession creates a session whose identifier and metadata reflect the
// detected platform. The returned session ID follows the
// {platform}_{slug}_{date} convention.
func (z *ZepMCP) StartSession(ctx context.Context, userID, sessionContext string, contextType core.ContextType, project, privacyLevel string, tags []string) (string, error) {
	resolved := z.guard.ResolveLenient(userID)
	id := z.namer.Name(sessionContext, contextType, project)
	meta := z.composer.Compose(sessionContext, contextType, project, privacyLevel, tags)
	if _, err := z.client.CreateSession(ctx, id, resolved, meta.ToMap()); err != nil {
		return "", err
	}
	return id, nil
}

// AddMemory appends conversation messages to a session and returns the
// number of messages accepted.
func (z *ZepMCP) AddMemory(ctx context.Context, sessionID string, messages []core.Message) (int, error) {
	return z.client.AppendMessages(ctx, sessionID, messages)
}

// Memory retrieves a session's messages, context block, facts and summary.
// A zero lastN returns the store's default window.
func (z *ZepMCP) Memory(ctx context.Context, sessionID string, lastN int) (*core.Memory, error) {
	return z.client.GetSessionMemory(ctx, sessionID, lastN)
}

// Search runs a semantic search over one session's history. scope may be
// "messages", "summary" or empty for the store default.
func (z *ZepMCP) Search(ctx context.Context, sessionID, query, scope string, limit int) ([]core.SearchResult, error) {
	return z.client.SearchSession(ctx, sessionID, query, scope, limit)
}

// RelevantContext aggregates memory from the current session and related
// sessions of the same user, honoring privacy boundaries.
func (z *ZepMCP) RelevantContext(ctx context.Context, currentSessionID, query string, limit, lookbackDays int, userID string) *recall.AggregateResult {
	return z.aggregator.Aggregate(ctx, currentSessionID, query, limit, lookbackDays, userID)
}

// PlatformSummary reports per-platform activity for the recent window.
func (z *ZepMCP) PlatformSummary(ctx context.Context, platform string, days int, userID string) *recall.PlatformSummaryResult {
	return z.aggregator.PlatformSummary(ctx, platform, days, userID)
}

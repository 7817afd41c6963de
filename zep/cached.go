package zep

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Whaleylaw/zep-mcp/core"
)

// CachedClient decorates a core.MemoryClient with a TTL cache over the
// read paths that dominate aggregation traffic: session listings, session
// memory and user facts. Writes invalidate the affected keys so callers
// never observe their own writes as stale reads. Pure pass-through for
// everything else.
//
// Only unlimited fetches are cached or served from cache. A limit-capped
// fetch must neither prime the cache with a truncated result nor be served
// an over-long cached one, so it always goes to the remote store.
type CachedClient struct {
	inner core.MemoryClient
	cache *gocache.Cache
}

// NewCachedClient wraps inner with the given TTL. A non-positive TTL
// disables expiry-based caching entirely; the wrapper then behaves as a
// transparent pass-through.
func NewCachedClient(inner core.MemoryClient, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		return &CachedClient{inner: inner}
	}
	return &CachedClient{inner: inner, cache: gocache.New(ttl, 2*ttl)}
}

// CreateUser passes through.
func (c *CachedClient) CreateUser(ctx context.Context, req core.CreateUserRequest) (*core.UserRecord, error) {
	return c.inner.CreateUser(ctx, req)
}

// GetUser passes through.
func (c *CachedClient) GetUser(ctx context.Context, userID string) (*core.UserRecord, error) {
	return c.inner.GetUser(ctx, userID)
}

// UpdateUser passes through.
func (c *CachedClient) UpdateUser(ctx context.Context, userID string, metadata map[string]any) (*core.UserRecord, error) {
	return c.inner.UpdateUser(ctx, userID, metadata)
}

// CreateSession passes through and invalidates the owner's session listing.
func (c *CachedClient) CreateSession(ctx context.Context, sessionID, userID string, metadata map[string]any) (*core.SessionRecord, error) {
	rec, err := c.inner.CreateSession(ctx, sessionID, userID, metadata)
	if err == nil && c.cache != nil {
		c.cache.Delete("sessions:" + userID)
	}
	return rec, err
}

// ListSessions serves unlimited listings from cache within the TTL. Only
// errorless unlimited responses are cached; a positive limit bypasses the
// cache in both directions.
func (c *CachedClient) ListSessions(ctx context.Context, userID string, limit int) ([]core.SessionRecord, error) {
	if limit > 0 {
		return c.inner.ListSessions(ctx, userID, limit)
	}
	key := "sessions:" + userID
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.([]core.SessionRecord), nil
		}
	}
	sessions, err := c.inner.ListSessions(ctx, userID, limit)
	if err == nil && c.cache != nil {
		c.cache.SetDefault(key, sessions)
	}
	return sessions, err
}

// AppendMessages passes through and invalidates the session's memory.
func (c *CachedClient) AppendMessages(ctx context.Context, sessionID string, messages []core.Message) (int, error) {
	n, err := c.inner.AppendMessages(ctx, sessionID, messages)
	if err == nil && c.cache != nil {
		c.cache.Delete("memory:" + sessionID)
	}
	return n, err
}

// GetSessionMemory serves unlimited reads from cache within the TTL; a
// positive limit bypasses the cache in both directions.
func (c *CachedClient) GetSessionMemory(ctx context.Context, sessionID string, limit int) (*core.Memory, error) {
	if limit > 0 {
		return c.inner.GetSessionMemory(ctx, sessionID, limit)
	}
	key := "memory:" + sessionID
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.(*core.Memory), nil
		}
	}
	memory, err := c.inner.GetSessionMemory(ctx, sessionID, limit)
	if err == nil && c.cache != nil {
		c.cache.SetDefault(key, memory)
	}
	return memory, err
}

// SearchSession passes through; query results are too variable to cache.
func (c *CachedClient) SearchSession(ctx context.Context, sessionID, query, scope string, limit int) ([]core.SearchResult, error) {
	return c.inner.SearchSession(ctx, sessionID, query, scope, limit)
}

// GetUserFacts serves from cache within the TTL.
func (c *CachedClient) GetUserFacts(ctx context.Context, userID string) ([]core.Fact, error) {
	key := "facts:" + userID
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.([]core.Fact), nil
		}
	}
	facts, err := c.inner.GetUserFacts(ctx, userID)
	if err == nil && c.cache != nil {
		c.cache.SetDefault(key, facts)
	}
	return facts, err
}

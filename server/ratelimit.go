package server

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"

	"github.com/Whaleylaw/zep-mcp/identity"
	"github.com/Whaleylaw/zep-mcp/tools"
)

// limiterPool hands out one token bucket per user id. Buckets refill at
// the configured per-minute rate and allow a full minute's worth of burst.
type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rpm      int
}

func newLimiterPool(rpm int) *limiterPool {
	return &limiterPool{
		limiters: make(map[string]*rate.Limiter),
		rpm:      rpm,
	}
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(float64(p.rpm)/60.0), p.rpm)
		p.limiters[key] = l
	}
	return l
}

// rateLimitMiddleware enforces a per-user request budget across all tools.
// Requests are keyed by the user_id argument when present, otherwise by the
// guard's default identity, so one chatty client cannot starve the rest.
// A zero or negative rpm disables limiting.
func rateLimitMiddleware(rpm int, guard *identity.Guard) server.ToolHandlerMiddleware {
	pool := newLimiterPool(rpm)
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if rpm <= 0 {
				return next(ctx, req)
			}
			key := req.GetString("user_id", "")
			if key == "" {
				key = guard.Default()
			}
			if !pool.get(key).Allow() {
				return tools.RateLimited(key, rpm), nil
			}
			return next(ctx, req)
		}
	}
}

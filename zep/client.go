package zep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/internal/util"
	"github.com/Whaleylaw/zep-mcp/logging"
)

// APIError reports a non-2xx response from the Zep API.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("zep api error: status %d: %s", e.Status, e.Body)
}

// Client talks to the Zep Cloud v2 REST API. It implements
// core.MemoryClient. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	logger  logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client (tests, custom
// transports, timeouts).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.httpc.Timeout = d }
}

// WithLogger attaches a logger for request-level diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient constructs a Client for the given base URL and API key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, req core.CreateUserRequest) (*core.UserRecord, error) {
	body := map[string]any{"user_id": req.UserID}
	if req.FirstName != "" {
		body["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		body["last_name"] = req.LastName
	}
	if req.Email != "" {
		body["email"] = req.Email
	}
	if req.Metadata != nil {
		body["metadata"] = req.Metadata
	}
	var user core.UserRecord
	if err := c.do(ctx, http.MethodPost, "/api/v2/users", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a user record.
func (c *Client) GetUser(ctx context.Context, userID string) (*core.UserRecord, error) {
	var user core.UserRecord
	path := "/api/v2/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces a user's metadata with the supplied map. Merge
// semantics (shallow merge over the existing metadata) are the caller's
// responsibility; see tools.UpdateUserMetadata.
func (c *Client) UpdateUser(ctx context.Context, userID string, metadata map[string]any) (*core.UserRecord, error) {
	var user core.UserRecord
	path := "/api/v2/users/" + url.PathEscape(userID)
	body := map[string]any{"metadata": metadata}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateSession creates a session bound to a user with optional metadata.
func (c *Client) CreateSession(ctx context.Context, sessionID, userID string, metadata map[string]any) (*core.SessionRecord, error) {
	body := map[string]any{"session_id": sessionID, "user_id": userID}
	if metadata != nil {
		body["metadata"] = metadata
	}
	var session core.SessionRecord
	if err := c.do(ctx, http.MethodPost, "/api/v2/sessions", nil, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns the user's sessions, newest data as the API orders
// them. limit <= 0 leaves the page size to the server.
func (c *Client) ListSessions(ctx context.Context, userID string, limit int) ([]core.SessionRecord, error) {
	var sessions []core.SessionRecord
	path := "/api/v2/users/" + url.PathEscape(userID) + "/sessions"
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// AppendMessages adds role-tagged messages to a session's memory and
// returns the number of messages accepted.
func (c *Client) AppendMessages(ctx context.Context, sessionID string, messages []core.Message) (int, error) {
	path := "/api/v2/sessions/" + url.PathEscape(sessionID) + "/memory"
	body := map[string]any{"messages": messages}
	if err := c.do(ctx, http.MethodPost, path, nil, body, nil); err != nil {
		return 0, err
	}
	return len(messages), nil
}

// GetSessionMemory fetches a session's messages plus any derived context,
// facts and summary. limit caps the number of trailing messages requested.
func (c *Client) GetSessionMemory(ctx context.Context, sessionID string, limit int) (*core.Memory, error) {
	var memory core.Memory
	path := "/api/v2/sessions/" + url.PathEscape(sessionID) + "/memory"
	q := url.Values{}
	if limit > 0 {
		q.Set("lastn", strconv.Itoa(limit))
	}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &memory); err != nil {
		return nil, err
	}
	return &memory, nil
}

// SearchSession runs a scoped full-text/semantic search over a session.
func (c *Client) SearchSession(ctx context.Context, sessionID, query, scope string, limit int) ([]core.SearchResult, error) {
	path := "/api/v2/sessions/" + url.PathEscape(sessionID) + "/search"
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	body := map[string]any{"text": query}
	if scope != "" {
		body["search_scope"] = scope
	}
	var results []core.SearchResult
	if err := c.do(ctx, http.MethodPost, path, q, body, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetUserFacts returns the facts the store has extracted about a user.
func (c *Client) GetUserFacts(ctx context.Context, userID string) ([]core.Fact, error) {
	path := "/api/v2/users/" + url.PathEscape(userID) + "/facts"
	var resp struct {
		Facts []core.Fact `json:"facts"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Facts, nil
}

// do executes a single JSON round-trip. Non-2xx responses become *APIError;
// an empty out skips response decoding.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", util.NewID())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logRemote(method, path, start, err)
		return fmt.Errorf("zep request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Status: resp.StatusCode, Body: string(data)}
		c.logRemote(method, path, start, apiErr)
		return apiErr
	}

	c.logRemote(method, path, start, nil)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// logRemote reports one round-trip's outcome. Loggers implementing
// RemoteCallLogger get the structured call record; plain loggers get a
// warn on failure and a debug line on success.
func (c *Client) logRemote(method, path string, start time.Time, err error) {
	dur := time.Since(start)
	if rl, ok := c.logger.(logging.RemoteCallLogger); ok {
		rl.LogRemoteCall(method+" "+path, dur, err == nil, err)
		return
	}
	if err != nil {
		c.logger.Warn("zep request failed", "method", method, "path", path, "duration", dur, "error", err)
		return
	}
	c.logger.Debug("zep request completed", "method", method, "path", path, "duration", dur)
}

package zep

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/logging"
)

func TestClientSetsAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(core.UserRecord{UserID: "alice"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key")
	user, err := client.GetUser(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.UserID)
	assert.Equal(t, "Api-Key secret-key", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientCreateSession(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(core.SessionRecord{SessionID: "cursor_fix_bug_2025_03_09", UserID: "alice"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	meta := map[string]any{"platform": "cursor"}
	session, err := client.CreateSession(context.Background(), "cursor_fix_bug_2025_03_09", "alice", meta)
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/sessions", gotPath)
	assert.Equal(t, "cursor_fix_bug_2025_03_09", gotBody["session_id"])
	assert.Equal(t, "alice", gotBody["user_id"])
	assert.Equal(t, map[string]any{"platform": "cursor"}, gotBody["metadata"])
	assert.Equal(t, "alice", session.UserID)
}

func TestClientListSessionsLimit(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]core.SessionRecord{{SessionID: "s1"}, {SessionID: "s2"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	sessions, err := client.ListSessions(context.Background(), "alice", 50)
	require.NoError(t, err)

	assert.Equal(t, "limit=50", gotQuery)
	assert.Len(t, sessions, 2)
}

func TestClientSearchSessionBody(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode([]core.SearchResult{{Score: 0.9}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	results, err := client.SearchSession(context.Background(), "s1", "auth errors", "messages", 3)
	require.NoError(t, err)

	assert.Equal(t, "auth errors", gotBody["text"])
	assert.Equal(t, "messages", gotBody["search_scope"])
	require.Len(t, results, 1)
	assert.InDelta(t, 0.9, results[0].Score, 1e-9)
}

func TestClientGetUserFactsUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"facts":[{"fact":"prefers Go"},{"fact":"works on zep-mcp"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	facts, err := client.GetUserFacts(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, facts, 2)
	assert.Equal(t, "prefers Go", facts[0].Fact)
}

func TestClientAppendMessagesCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	n, err := client.AppendMessages(context.Background(), "s1", []core.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// callRecord captures one LogRemoteCall invocation.
type callRecord struct {
	operation string
	success   bool
	err       error
}

// recordingLogger is a no-op Logger that records remote call reports.
type recordingLogger struct {
	logging.NoOpLogger
	calls []callRecord
}

func (r *recordingLogger) LogRemoteCall(operation string, dur time.Duration, success bool, err error) {
	r.calls = append(r.calls, callRecord{operation: operation, success: success, err: err})
}

func TestClientReportsRemoteCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/users/ghost" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(core.UserRecord{UserID: "alice"})
	}))
	defer srv.Close()

	rec := &recordingLogger{}
	client := NewClient(srv.URL, "key", WithLogger(rec))

	_, err := client.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	_, err = client.GetUser(context.Background(), "ghost")
	require.Error(t, err)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, "GET /api/v2/users/alice", rec.calls[0].operation)
	assert.True(t, rec.calls[0].success)
	assert.Equal(t, "GET /api/v2/users/ghost", rec.calls[1].operation)
	assert.False(t, rec.calls[1].success)

	var apiErr *APIError
	require.True(t, errors.As(rec.calls[1].err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"user not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	_, err := client.GetUser(context.Background(), "ghost")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Body, "user not found")
}

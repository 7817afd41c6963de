package zep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/internal/testutil"
)

func TestCachedClientServesListFromCache(t *testing.T) {
	client := new(testutil.MockMemoryClient)
	client.On("ListSessions", mock.Anything, "alice", 0).
		Return([]core.SessionRecord{{SessionID: "s1"}}, nil).Once()

	cached := NewCachedClient(client, time.Minute)
	ctx := context.Background()

	first, err := cached.ListSessions(ctx, "alice", 0)
	require.NoError(t, err)
	second, err := cached.ListSessions(ctx, "alice", 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	client.AssertNumberOfCalls(t, "ListSessions", 1)
}

func TestCachedClientLimitedListDoesNotPrimeCache(t *testing.T) {
	all := []core.SessionRecord{{SessionID: "s1"}, {SessionID: "s2"}, {SessionID: "s3"}}
	client := new(testutil.MockMemoryClient)
	client.On("ListSessions", mock.Anything, "alice", 1).
		Return(all[:1], nil)
	client.On("ListSessions", mock.Anything, "alice", 0).
		Return(all, nil)

	cached := NewCachedClient(client, time.Minute)
	ctx := context.Background()

	capped, err := cached.ListSessions(ctx, "alice", 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)

	full, err := cached.ListSessions(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Len(t, full, 3)
}

func TestCachedClientLimitedListBypassesCachedListing(t *testing.T) {
	all := []core.SessionRecord{{SessionID: "s1"}, {SessionID: "s2"}, {SessionID: "s3"}}
	client := new(testutil.MockMemoryClient)
	client.On("ListSessions", mock.Anything, "alice", 0).
		Return(all, nil)
	client.On("ListSessions", mock.Anything, "alice", 1).
		Return(all[:1], nil)

	cached := NewCachedClient(client, time.Minute)
	ctx := context.Background()

	full, err := cached.ListSessions(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, full, 3)

	capped, err := cached.ListSessions(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Len(t, capped, 1)
}

func TestCachedClientLimitedMemoryReadBypassesCache(t *testing.T) {
	full := &core.Memory{Messages: []core.Message{
		{Role: "user", Content: "m1"},
		{Role: "assistant", Content: "m2"},
	}}
	client := new(testutil.MockMemoryClient)
	client.On("GetSessionMemory", mock.Anything, "s1", 1).
		Return(&core.Memory{Messages: full.Messages[1:]}, nil)
	client.On("GetSessionMemory", mock.Anything, "s1", 0).
		Return(full, nil)

	cached := NewCachedClient(client, time.Minute)
	ctx := context.Background()

	capped, err := cached.GetSessionMemory(ctx, "s1", 1)
	require.NoError(t, err)
	require.Len(t, capped.Messages, 1)

	memory, err := cached.GetSessionMemory(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Len(t, memory.Messages, 2)
}

func TestCachedClientCreateSessionInvalidatesListing(t *testing.T) {
	client := new(testutil.MockMemoryClient)
	client.On("ListSessions", mock.Anything, "alice", 0).
		Return([]core.SessionRecord{{SessionID: "s1"}}, nil)
	client.On("CreateSession", mock.Anything, "s2", "alice", mock.Anything).
		Return(&core.SessionRecord{SessionID: "s2"}, nil)

	cached := NewCachedClient(client, time.Minute)
	ctx := context.Background()

	_, err := cached.ListSessions(ctx, "alice", 0)
	require.NoError(t, err)
	_, err = cached.CreateSession(ctx, "s2", "alice", nil)
	require.NoError(t, err)
	_, err = cached.ListSessions(ctx, "alice", 0)
	require.NoError(t, err)

	client.AssertNumberOfCalls(t, "ListSessions", 2)
}

func TestCachedClientAppendInvalidatesMemory(t *testing.T) {
	client := new(testutil.MockMemoryClient)
	client.On("GetSessionMemory", mock.Anything, "s1", 0).Return(&core.Memory{}, nil)
	client.On("AppendMessages", mock.Anything, "s1", mock.Anything).Return(1, nil)

	cached := NewCachedClient(client, time.Minute)
	ctx := context.Background()

	_, err := cached.GetSessionMemory(ctx, "s1", 0)
	require.NoError(t, err)
	_, err = cached.GetSessionMemory(ctx, "s1", 0)
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "GetSessionMemory", 1)

	_, err = cached.AppendMessages(ctx, "s1", []core.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	_, err = cached.GetSessionMemory(ctx, "s1", 0)
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "GetSessionMemory", 2)
}

func TestCachedClientZeroTTLPassesThrough(t *testing.T) {
	client := new(testutil.MockMemoryClient)
	client.On("GetUserFacts", mock.Anything, "alice").
		Return([]core.Fact{{Fact: "likes Go"}}, nil)

	cached := NewCachedClient(client, 0)
	ctx := context.Background()

	_, err := cached.GetUserFacts(ctx, "alice")
	require.NoError(t, err)
	_, err = cached.GetUserFacts(ctx, "alice")
	require.NoError(t, err)

	client.AssertNumberOfCalls(t, "GetUserFacts", 2)
}

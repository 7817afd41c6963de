package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Whaleylaw/zep-mcp/core"
)

// MockMemoryClient is a testify mock for the remote memory-store
// collaborator.
type MockMemoryClient struct {
	mock.Mock
}

// Interface compliance (compile-time assertion).
var _ core.MemoryClient = (*MockMemoryClient)(nil)

func (m *MockMemoryClient) CreateUser(ctx context.Context, req core.CreateUserRequest) (*core.UserRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.UserRecord), args.Error(1)
}

func (m *MockMemoryClient) GetUser(ctx context.Context, userID string) (*core.UserRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.UserRecord), args.Error(1)
}

func (m *MockMemoryClient) UpdateUser(ctx context.Context, userID string, metadata map[string]any) (*core.UserRecord, error) {
	args := m.Called(ctx, userID, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.UserRecord), args.Error(1)
}

func (m *MockMemoryClient) CreateSession(ctx context.Context, sessionID, userID string, metadata map[string]any) (*core.SessionRecord, error) {
	args := m.Called(ctx, sessionID, userID, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.SessionRecord), args.Error(1)
}

func (m *MockMemoryClient) ListSessions(ctx context.Context, userID string, limit int) ([]core.SessionRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.SessionRecord), args.Error(1)
}

func (m *MockMemoryClient) AppendMessages(ctx context.Context, sessionID string, messages []core.Message) (int, error) {
	args := m.Called(ctx, sessionID, messages)
	return args.Int(0), args.Error(1)
}

func (m *MockMemoryClient) GetSessionMemory(ctx context.Context, sessionID string, limit int) (*core.Memory, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.Memory), args.Error(1)
}

func (m *MockMemoryClient) SearchSession(ctx context.Context, sessionID, query, scope string, limit int) ([]core.SearchResult, error) {
	args := m.Called(ctx, sessionID, query, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.SearchResult), args.Error(1)
}

func (m *MockMemoryClient) GetUserFacts(ctx context.Context, userID string) ([]core.Fact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.Fact), args.Error(1)
}

package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/todo-api/internal/service/auth"
)

var _ auth.RefreshStore = (*MockRefreshStore)(nil)

// MockRefreshStore is an in-memory auth.RefreshStore. Expiry is not tracked.
type MockRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]int64

	// Err, when set, is returned by every call.
	Err error
}

// NewMockRefreshStore creates an empty MockRefreshStore.
func NewMockRefreshStore() *MockRefreshStore {
	return &MockRefreshStore{tokens: make(map[string]int64)}
}

// Save implements auth.RefreshStore.
func (m *MockRefreshStore) Save(_ context.Context, tokenID string, userID int64, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.tokens[tokenID] = userID
	return nil
}

// Consume implements auth.RefreshStore.
func (m *MockRefreshStore) Consume(_ context.Context, tokenID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	userID, ok := m.tokens[tokenID]
	if !ok {
		return 0, auth.ErrRefreshTokenReused
	}
	delete(m.tokens, tokenID)
	return userID, nil
}

// Len returns the number of outstanding tokens.
func (m *MockRefreshStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

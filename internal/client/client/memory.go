package client

import (
	"context"
	"sync"
)

// MemoryTokenStorage keeps tokens in process memory. The CLI uses it when no
// data directory is configured, so the session ends with the process.
type MemoryTokenStorage struct {
	mu     sync.Mutex
	tokens Tokens
}

// NewMemoryTokenStorage constructs an empty MemoryTokenStorage.
func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

func (m *MemoryTokenStorage) Load(context.Context) (Tokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens, nil
}

func (m *MemoryTokenStorage) Save(_ context.Context, t Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = t
	return nil
}

func (m *MemoryTokenStorage) CompareAndSwap(_ context.Context, old, next Tokens) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens != old {
		return false, nil
	}
	m.tokens = next
	return true, nil
}

func (m *MemoryTokenStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = Tokens{}
	return nil
}

package storage

import (
	"context"
	"sync"

	"github.com/matst80/slask-dashboard/pkg/types"
)

type MemoryStore struct {
	mu    sync.RWMutex
	specs map[string]types.FilterSpec
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{specs: make(map[string]types.FilterSpec)}
}

func (m *MemoryStore) Save(_ context.Context, sessionId string, spec types.FilterSpec) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specs[sessionId] = spec
	return nil
}

func (m *MemoryStore) Load(_ context.Context, sessionId string) (types.FilterSpec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spec, ok := m.specs[sessionId]
	if !ok {
		return types.FilterSpec{}, ErrNotFound
	}
	return spec, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

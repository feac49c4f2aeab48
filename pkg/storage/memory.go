package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps objects in a map. Used by tests.
type MemoryStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
	}
}

func (m *MemoryStore) PutPublic(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = append([]byte(nil), data...)
	m.Types[key] = contentType
	return "memory://photos/" + key, nil
}

package inventory

import (
	"context"
	"sync"
)

// MemoryBlobs keeps blobs in a map. Nothing survives the process.
type MemoryBlobs struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{data: make(map[string][]byte)}
}

func (m *MemoryBlobs) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *MemoryBlobs) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

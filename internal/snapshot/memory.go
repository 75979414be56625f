package snapshot

import (
	"context"
	"sync"

	"github.com/hms/hms/internal/records"
)

// MemoryProvider keeps payloads in process memory. Safe for concurrent use.
type MemoryProvider struct {
	mu    sync.RWMutex
	blobs map[records.Kind][]byte
}

// NewMemoryProvider returns an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{blobs: make(map[records.Kind][]byte)}
}

func (m *MemoryProvider) Read(_ context.Context, kind records.Kind) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[kind]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *MemoryProvider) Write(_ context.Context, kind records.Kind, payload []byte) error {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.mu.Lock()
	m.blobs[kind] = cp
	m.mu.Unlock()
	return nil
}

// Remove drops a stored payload so the next Read reports ErrNotFound.
func (m *MemoryProvider) Remove(kind records.Kind) {
	m.mu.Lock()
	delete(m.blobs, kind)
	m.mu.Unlock()
}

func (m *MemoryProvider) Driver() Driver { return DriverMemory }

func (m *MemoryProvider) Close() error { return nil }

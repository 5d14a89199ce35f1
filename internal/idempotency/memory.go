package idempotency

import (
	"context"
	"sync"
	"time"
)

// MemoryStore - замена Redis для запуска без REDIS_ADDR. Ключи живут в пределах процесса.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	keys map[string]time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		now:  time.Now,
		keys: make(map[string]time.Time),
	}
}

func (m *MemoryStore) Seen(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if expires, ok := m.keys[key]; ok && now.Before(expires) {
		return true, nil
	}

	for k, expires := range m.keys {
		if !now.Before(expires) {
			delete(m.keys, k)
		}
	}

	m.keys[key] = now.Add(m.ttl)
	return false, nil
}

func (m *MemoryStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keys, key)
	return nil
}

package selection

import "sync"

type memoryBagStore struct {
	mu   sync.RWMutex
	bags map[string][]int
}

// NewMemoryBagStore builds an in-memory BagStore for tests and offline runs.
func NewMemoryBagStore() BagStore {
	return &memoryBagStore{bags: map[string][]int{}}
}

func (m *memoryBagStore) LoadBag(key string) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.bags[key]
	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}

func (m *memoryBagStore) SaveBag(key string, ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]int, len(ids))
	copy(cp, ids)
	m.bags[key] = cp
	return nil
}

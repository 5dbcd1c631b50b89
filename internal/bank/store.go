package bank

import (
	"fmt"
	"sort"
	"sync"
)

// Store persists uploaded banks keyed by a caller-chosen id.
type Store interface {
	PutBank(id string, qs []Question) error
	GetBank(id string) (*Bank, error)
	ListBanks() ([]string, error)
}

type memoryStore struct {
	mu    sync.RWMutex
	banks map[string][]Question
}

// NewMemoryStore builds an in-memory Store, used in tests and offline runs.
func NewMemoryStore() Store {
	return &memoryStore{banks: map[string][]Question{}}
}

func (m *memoryStore) PutBank(id string, qs []Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banks[id] = qs
	return nil
}

func (m *memoryStore) GetBank(id string) (*Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qs, ok := m.banks[id]
	if !ok {
		return nil, fmt.Errorf("bank %q not found", id)
	}
	return New(qs), nil
}

func (m *memoryStore) ListBanks() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.banks))
	for id := range m.banks {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

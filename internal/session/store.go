package session

import (
	"fmt"
	"sync"
)

// Store persists sessions and the served-question coverage log.
type Store interface {
	Put(s Session) error
	Get(id string) (Session, error)
	AddCoverage(ids []int) error
	CoverageIDs() ([]int, error)
	ResetCoverage() error
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	coverage map[int]struct{}
	order    []int
}

// NewMemoryStore builds an in-memory Store for tests and offline runs.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: map[string]Session{},
		coverage: map[int]struct{}{},
	}
}

func (m *memoryStore) Put(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memoryStore) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session %q not found", id)
	}
	return s, nil
}

func (m *memoryStore) AddCoverage(ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if _, ok := m.coverage[id]; !ok {
			m.coverage[id] = struct{}{}
			m.order = append(m.order, id)
		}
	}
	return nil
}

func (m *memoryStore) CoverageIDs() ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]int, len(m.order))
	copy(out, m.order)
	return out, nil
}

func (m *memoryStore) ResetCoverage() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coverage = map[int]struct{}{}
	m.order = nil
	return nil
}

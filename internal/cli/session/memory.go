package session

import "sync"

// MemoryStore is a Store that lives as long as the process
type MemoryStore struct {
	mu      sync.Mutex
	session Session
}

// NewMemoryStore returns a store holding s
func NewMemoryStore(s Session) *MemoryStore {
	return &MemoryStore{session: s}
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	return nil
}

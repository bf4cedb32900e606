package store

import (
	"sort"
	"sync"

	"moodmate/pkg/domain"
)

// MemoryStore keeps records in-process. Used in tests and local runs
// without Postgres.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]domain.User // key: user ID
	names    map[string]string      // username -> user ID
	checkIns map[string][]domain.CheckIn
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]domain.User),
		names:    make(map[string]string),
		checkIns: make(map[string][]domain.CheckIn),
	}
}

// SaveUser stores a user, enforcing username uniqueness under the lock.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.names[u.Username]; taken {
		return ErrDuplicateUsername
	}
	m.users[u.ID] = u
	m.names[u.Username] = u.ID
	return nil
}

// GetUserByUsername looks up a user by exact username.
func (m *MemoryStore) GetUserByUsername(username string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.names[username]
	if !ok {
		return domain.User{}, false, nil
	}
	u, ok := m.users[id]
	return u, ok, nil
}

// GetUserByID looks up a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// SaveCheckIn appends a check-in record.
func (m *MemoryStore) SaveCheckIn(c domain.CheckIn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkIns[c.UserID] = append(m.checkIns[c.UserID], c)
	return nil
}

// ListCheckInsByUser returns the user's check-ins, newest first.
func (m *MemoryStore) ListCheckInsByUser(userID string) ([]domain.CheckIn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.checkIns[userID]
	out := make([]domain.CheckIn, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

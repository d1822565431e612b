package dispatcher

import "sync"

// Session holds the authenticated admin's bearer token and profile.
type Session struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// SessionStore abstracts the persistent token store so the client is
// testable without a real browser-local storage equivalent. Writes are
// last-write-wins; there is no merge logic.
type SessionStore interface {
	Load() (Session, bool)
	Save(Session)
	Clear()
}

// MemoryStore is an in-process SessionStore.
type MemoryStore struct {
	mu      sync.Mutex
	session Session
	set     bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored session and whether one is present.
func (m *MemoryStore) Load() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.set
}

// Save replaces the stored session.
func (m *MemoryStore) Save(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.set = true
}

// Clear removes the stored session.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	m.set = false
}

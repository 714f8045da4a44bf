package session

import "sync"

// Store is the volatile keyed session map. Records do not survive process
// restart and there is no eviction policy.
//
// The mutex serializes map access only. Callers are expected to be the
// single writer for a given session id at a time; concurrent writers to
// the same id can race on the record's fields. That is a documented
// limitation of the single-tenant-per-session usage pattern, not
// something the store guards against.
type Store struct {
	mu sync.RWMutex
	m  map[string]*Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{m: make(map[string]*Session)}
}

// Get returns the session for id, or nil if absent.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[id]
}

// Set stores the session under id, replacing any existing record.
func (s *Store) Set(id string, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = sess
}

// Has reports whether a session exists for id.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[id]
	return ok
}

// Delete evicts the session for id. Deleting an absent id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

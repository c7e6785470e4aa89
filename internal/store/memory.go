package store

import (
	"sync"
	"time"

	"github.com/tombowditch/pasty-go/internal/paste"
)

type memoryEntry struct {
	paste   paste.Paste
	expires time.Time
}

// MemoryStore implements Store in process memory. Used when no Redis is
// configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates an empty in-memory store. A zero ttl keeps pastes forever.
func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// lookup returns the live entry for id. Callers hold mu.
func (s *MemoryStore) lookup(id string) (memoryEntry, bool) {
	e, ok := s.entries[id]
	if !ok {
		return e, false
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		return e, false
	}
	return e, true
}

// Get retrieves a paste by ID.
func (s *MemoryStore) Get(id string) (*paste.Paste, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	p := e.paste
	return &p, nil
}

// Create stores a paste if its ID is free.
func (s *MemoryStore) Create(p *paste.Paste) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(p.ID); ok {
		return false, nil
	}
	e := memoryEntry{paste: *p}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[p.ID] = e
	return true, nil
}

// Update overwrites an existing paste, keeping its expiry.
func (s *MemoryStore) Update(p *paste.Paste) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(p.ID)
	if !ok {
		return ErrNotFound
	}
	e.paste = *p
	s.entries[p.ID] = e
	return nil
}

// Delete removes a paste.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(id); !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

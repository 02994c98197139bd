package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory with a sliding TTL.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryStore constructs a MemoryStore. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, principal string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.lookupLocked(principal)
	if !ok {
		return Session{}, ErrNotFound
	}
	return cloneSession(sess), nil
}

func (s *MemoryStore) Update(ctx context.Context, principal string, fn func(*Session, bool) error) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, found := s.lookupLocked(principal)
	next := cloneSession(current)
	if err := fn(&next, found); err != nil {
		return Session{}, err
	}
	entry := memoryEntry{session: next}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.data[principal] = entry
	return cloneSession(next), nil
}

func (s *MemoryStore) Delete(ctx context.Context, principal string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.data, principal)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) lookupLocked(principal string) (Session, bool) {
	e, ok := s.data[principal]
	if !ok {
		return Session{}, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.data, principal)
		return Session{}, false
	}
	return e.session, true
}

func cloneSession(s Session) Session {
	out := s
	out.Document = s.Document.Clone()
	if s.Paused != nil {
		paused := *s.Paused
		out.Paused = &paused
	}
	return out
}

var _ Store = (*MemoryStore)(nil)

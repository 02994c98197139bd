package credits

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.RWMutex
	data     map[string]Account
	starting int
}

func newMemoryStore(starting int) *memoryStore {
	return &memoryStore{
		data:     make(map[string]Account),
		starting: starting,
	}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.RLock()
	a, ok := s.data[userID]
	s.mu.RUnlock()
	if ok {
		return a, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(userID), nil
}

func (s *memoryStore) Consume(ctx context.Context, userID string, n int) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.ensureLocked(userID)
	if n <= 0 {
		return a, nil
	}
	if a.Credits < n {
		return a, ErrInsufficientCredits
	}
	a.Credits -= n
	a.UpdatedAt = time.Now().UTC()
	s.data[userID] = a
	return a, nil
}

func (s *memoryStore) Grant(ctx context.Context, userID string, n int) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.ensureLocked(userID)
	a.Credits += n
	if a.Credits < 0 {
		a.Credits = 0
	}
	a.UpdatedAt = time.Now().UTC()
	s.data[userID] = a
	return a, nil
}

// setPlan is used by tests to flip an account to a licensed plan.
func (s *memoryStore) setPlan(userID, plan string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.ensureLocked(userID)
	a.Plan = plan
	s.data[userID] = a
}

func (s *memoryStore) ensureLocked(userID string) Account {
	a, ok := s.data[userID]
	if !ok {
		a = defaultAccount(s.starting)
		s.data[userID] = a
	}
	return a
}

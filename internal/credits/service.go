package credits

import "context"

// DefaultStartingCredits is the balance a new local account opens with.
const DefaultStartingCredits = 4

type store interface {
	Get(ctx context.Context, userID string) (Account, error)
	Consume(ctx context.Context, userID string, n int) (Account, error)
	Grant(ctx context.Context, userID string, n int) (Account, error)
}

// Service manages credit balances via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore(DefaultStartingCredits)}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// NewRemoteService constructs a Service backed by the external balance API.
func NewRemoteService(remote store) *Service {
	return &Service{store: remote}
}

// Get returns the account for a user, initializing defaults if absent.
func (s *Service) Get(ctx context.Context, userID string) (Account, error) {
	return s.store.Get(ctx, userID)
}

// CanConsume reports whether the user can spend n credits.
func (s *Service) CanConsume(ctx context.Context, userID string, n int) (bool, Account, error) {
	a, err := s.store.Get(ctx, userID)
	if err != nil {
		return false, Account{}, err
	}
	if n <= 0 {
		return true, a, nil
	}
	return a.Credits >= n, a, nil
}

// Consume debits n credits, failing with ErrInsufficientCredits when the balance is too low.
func (s *Service) Consume(ctx context.Context, userID string, n int) (Account, error) {
	return s.store.Consume(ctx, userID, n)
}

// Grant adds n credits to the balance.
func (s *Service) Grant(ctx context.Context, userID string, n int) (Account, error) {
	return s.store.Grant(ctx, userID, n)
}

// Licensed reports whether the user holds a license. Lookup failures count as unlicensed.
func (s *Service) Licensed(ctx context.Context, userID string) (bool, error) {
	a, err := s.store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return Licensed(a), nil
}

package session

import "context"

// Store persists sessions keyed by principal.
type Store interface {
	Get(ctx context.Context, principal string) (Session, error)
	// Update runs fn on the current session (found=false when absent) and saves the result atomically.
	Update(ctx context.Context, principal string, fn func(s *Session, found bool) error) (Session, error)
	Delete(ctx context.Context, principal string) error
}

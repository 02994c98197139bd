package credits

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type pgStore struct {
	DB       *sql.DB
	Starting int
}

// NewPGStore constructs a Postgres-backed credit store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db, Starting: DefaultStartingCredits}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Account, error) {
	return s.update(ctx, userID, func(a Account) (Account, error) { return a, nil })
}

func (s *pgStore) Consume(ctx context.Context, userID string, n int) (Account, error) {
	return s.update(ctx, userID, func(a Account) (Account, error) {
		if n <= 0 {
			return a, nil
		}
		if a.Credits < n {
			return a, ErrInsufficientCredits
		}
		a.Credits -= n
		return a, nil
	})
}

func (s *pgStore) Grant(ctx context.Context, userID string, n int) (Account, error) {
	return s.update(ctx, userID, func(a Account) (Account, error) {
		a.Credits += n
		if a.Credits < 0 {
			a.Credits = 0
		}
		return a, nil
	})
}

// update locks the account row, applies fn and writes back the result when it changed.
func (s *pgStore) update(ctx context.Context, userID string, fn func(Account) (Account, error)) (Account, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Account{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	current, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Account{}, err
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if next.Credits != current.Credits {
		next.UpdatedAt = time.Now().UTC()
		if _, err = tx.ExecContext(ctx, `
UPDATE credit_accounts SET credits = $1, updated_at = $2 WHERE user_id = $3`, next.Credits, next.UpdatedAt, userID); err != nil {
			return Account{}, err
		}
	}
	if err = tx.Commit(); err != nil {
		return Account{}, err
	}
	return next, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, userID string) (Account, error) {
	var a Account
	row := tx.QueryRowContext(ctx, `
SELECT plan, credits, updated_at FROM credit_accounts WHERE user_id = $1 FOR UPDATE`, userID)
	err := row.Scan(&a.Plan, &a.Credits, &a.UpdatedAt)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Account{}, err
	}
	a = defaultAccount(s.Starting)
	if _, err = tx.ExecContext(ctx, `
INSERT INTO credit_accounts (user_id, plan, credits, updated_at) VALUES ($1, $2, $3, $4)`,
		userID, a.Plan, a.Credits, a.UpdatedAt); err != nil {
		return Account{}, err
	}
	return a, nil
}

package artifacts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores artifacts in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Artifact
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Artifact),
		byUser: make(map[string][]string),
	}
}

// Create stores the artifact.
func (r *MemoryRepo) Create(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		r.byUser[a.UserID] = append(r.byUser[a.UserID], a.ID)
	}
	r.byID[a.ID] = a
	return nil
}

// GetByID returns an artifact owned by userID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getLocked(userID, id)
}

// ListByUser returns artifacts newest first with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	ids := r.byUser[userID]
	list := make([]Artifact, 0, len(ids))
	for _, id := range ids {
		list = append(list, r.byID[id])
	}
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if offset >= len(list) {
		return []Artifact{}, nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}

// UpdateOutcome records the delivery outcome.
func (r *MemoryRepo) UpdateOutcome(ctx context.Context, userID, id, outcome string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.getLocked(userID, id)
	if err != nil {
		return Artifact{}, err
	}
	a.Outcome = outcome
	r.byID[id] = a
	return a, nil
}

func (r *MemoryRepo) getLocked(userID, id string) (Artifact, error) {
	a, ok := r.byID[id]
	if !ok {
		return Artifact{}, ErrNotFound
	}
	if a.UserID != userID {
		return Artifact{}, ErrForbidden
	}
	return a, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ Repo = (*MemoryRepo)(nil)

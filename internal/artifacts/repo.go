package artifacts

import "context"

// Repo defines persistence operations for export artifacts.
type Repo interface {
	Create(ctx context.Context, a Artifact) error
	GetByID(ctx context.Context, userID, id string) (Artifact, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Artifact, error)
	UpdateOutcome(ctx context.Context, userID, id, outcome string) (Artifact, error)
}

package artifacts

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const artifactColumns = `id, user_id, kind, template, file_name, storage_key, pages, size_bytes, mime_type, delivery_mode, outcome, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(s scanner) (Artifact, error) {
	var a Artifact
	err := s.Scan(
		&a.ID,
		&a.UserID,
		&a.Kind,
		&a.Template,
		&a.FileName,
		&a.StorageKey,
		&a.Pages,
		&a.SizeBytes,
		&a.MimeType,
		&a.DeliveryMode,
		&a.Outcome,
		&a.CreatedAt,
	)
	return a, err
}

// Create inserts an artifact.
func (r *PGRepo) Create(ctx context.Context, a Artifact) error {
	const query = `
INSERT INTO export_artifacts (` + artifactColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.Kind,
		a.Template,
		a.FileName,
		a.StorageKey,
		a.Pages,
		a.SizeBytes,
		a.MimeType,
		a.DeliveryMode,
		a.Outcome,
		a.CreatedAt,
	)
	return err
}

// GetByID returns an artifact owned by userID.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Artifact, error) {
	const query = `
SELECT ` + artifactColumns + `
FROM export_artifacts
WHERE id = $1
LIMIT 1`
	a, err := scanArtifact(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	if a.UserID != userID {
		return Artifact{}, ErrForbidden
	}
	return a, nil
}

// ListByUser lists artifacts newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Artifact, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT ` + artifactColumns + `
FROM export_artifacts
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Artifact{}
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateOutcome records the delivery outcome for an owned artifact.
func (r *PGRepo) UpdateOutcome(ctx context.Context, userID, id, outcome string) (Artifact, error) {
	const query = `
UPDATE export_artifacts SET outcome = $1
WHERE id = $2 AND user_id = $3
RETURNING ` + artifactColumns
	a, err := scanArtifact(r.DB.QueryRowContext(ctx, query, outcome, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, userID, id); getErr != nil {
				return Artifact{}, getErr
			}
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	return a, nil
}

var _ Repo = (*PGRepo)(nil)

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_artifact_store.go -package=mocks notebook-ai/internal/storage ArtifactStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ArtifactStore caches generated summaries and study guides.
type ArtifactStore interface {
	// Put stores content for (notebook, source, kind), replacing any previous value.
	Put(ctx context.Context, artifact *ArtifactRecord) error
	// Get returns ErrNotFound if nothing has been generated yet.
	Get(ctx context.Context, notebookID int64, source, kind string) (*ArtifactRecord, error)
	// DeleteByNotebook drops every artifact of the notebook.
	DeleteByNotebook(ctx context.Context, notebookID int64) error
}

// ArtifactRepo implements ArtifactStore on SQLite.
type ArtifactRepo struct {
	db *sql.DB
}

// NewArtifactRepo creates a new ArtifactRepo.
func NewArtifactRepo(db *sql.DB) *ArtifactRepo {
	return &ArtifactRepo{db: db}
}

// Put upserts an artifact.
func (r *ArtifactRepo) Put(ctx context.Context, a *ArtifactRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO artifacts (notebook_id, source, kind, content, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (notebook_id, source, kind) DO UPDATE SET
		 content = excluded.content, updated_at = CURRENT_TIMESTAMP`,
		a.NotebookID, a.Source, a.Kind, a.Content,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert artifact: %w", err)
	}
	return nil
}

// Get gets an artifact.
func (r *ArtifactRepo) Get(ctx context.Context, notebookID int64, source, kind string) (*ArtifactRecord, error) {
	var a ArtifactRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT notebook_id, source, kind, content, updated_at FROM artifacts WHERE notebook_id = ? AND source = ? AND kind = ?",
		notebookID, source, kind,
	).Scan(&a.NotebookID, &a.Source, &a.Kind, &a.Content, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artifact: %w", err)
	}
	return &a, nil
}

// DeleteByNotebook deletes all artifacts of a notebook.
func (r *ArtifactRepo) DeleteByNotebook(ctx context.Context, notebookID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM artifacts WHERE notebook_id = ?", notebookID); err != nil {
		return fmt.Errorf("failed to delete artifacts: %w", err)
	}
	return nil
}

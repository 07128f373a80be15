package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks notebook-ai/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// GetByNotebookAndSource gets a document by notebook ID and source filename.
	// Returns nil and ErrNotFound if not found.
	GetByNotebookAndSource(ctx context.Context, notebookID int64, source string) (*DocumentRecord, error)
	// Upsert inserts a new document or updates an existing one.
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// ListByNotebook returns the notebook's documents ordered by source.
	ListByNotebook(ctx context.Context, notebookID int64) ([]DocumentRecord, error)
	// ListSources returns the notebook's source filenames in sorted order.
	ListSources(ctx context.Context, notebookID int64) ([]string, error)
	// DeleteByNotebook removes every document (and its chunks) in the notebook.
	DeleteByNotebook(ctx context.Context, notebookID int64) error
	// Counts returns the number of documents and how many of them have no chunks.
	Counts(ctx context.Context) (total int, withoutChunks int, err error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = "id, notebook_id, source, path, hash, page_count, content, updated_at"

func scanDocument(row interface{ Scan(...any) error }, doc *DocumentRecord) error {
	return row.Scan(&doc.ID, &doc.NotebookID, &doc.Source, &doc.Path, &doc.Hash, &doc.PageCount, &doc.Content, &doc.UpdatedAt)
}

// GetByNotebookAndSource gets a document by notebook ID and source filename.
func (r *DocumentRepo) GetByNotebookAndSource(ctx context.Context, notebookID int64, source string) (*DocumentRecord, error) {
	var doc DocumentRecord
	err := scanDocument(r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE notebook_id = ? AND source = ?",
		notebookID, source,
	), &doc)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return &doc, nil
}

// Upsert inserts a new document or updates an existing one.
// If the document doesn't exist (by notebook_id and source), generates a new UUID.
// If it exists, updates path, hash, page count and content while preserving the ID.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	existing, err := r.GetByNotebookAndSource(ctx, doc.NotebookID, doc.Source)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing == nil && doc.ID == "" {
		doc.ID = uuid.New().String()
	} else if existing != nil {
		doc.ID = existing.ID
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, notebook_id, source, path, hash, page_count, content, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (notebook_id, source) DO UPDATE SET
		 path = excluded.path, hash = excluded.hash, page_count = excluded.page_count,
		 content = excluded.content, updated_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.NotebookID, doc.Source, doc.Path, doc.Hash, doc.PageCount, doc.Content,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	return nil
}

// ListByNotebook returns the notebook's documents ordered by source.
func (r *DocumentRepo) ListByNotebook(ctx context.Context, notebookID int64) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE notebook_id = ? ORDER BY source",
		notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		if err := scanDocument(rows, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

// ListSources returns the notebook's source filenames in sorted order.
// Returns an empty slice if the notebook has no documents.
func (r *DocumentRepo) ListSources(ctx context.Context, notebookID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT source FROM documents WHERE notebook_id = ? ORDER BY source",
		notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	sources := []string{}
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return sources, nil
}

// DeleteByNotebook deletes all documents of a notebook. Chunks go with them via the cascade.
func (r *DocumentRepo) DeleteByNotebook(ctx context.Context, notebookID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE notebook_id = ?", notebookID)
	if err != nil {
		return fmt.Errorf("failed to delete documents by notebook: %w", err)
	}
	return nil
}

// Counts returns the total number of documents and the number that have no chunks.
func (r *DocumentRepo) Counts(ctx context.Context) (int, int, error) {
	var total, withoutChunks int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("failed to query document count: %w", err)
	}
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents
		 WHERE id NOT IN (SELECT DISTINCT document_id FROM chunks)`).Scan(&withoutChunks)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query documents with 0 chunks: %w", err)
	}
	return total, withoutChunks, nil
}

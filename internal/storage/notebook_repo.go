package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notebook_store.go -package=mocks notebook-ai/internal/storage NotebookStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NotebookStore defines the interface for notebook storage operations.
type NotebookStore interface {
	// Create inserts a notebook. Returns ErrAlreadyExists if the name is taken.
	Create(ctx context.Context, name string) (*NotebookRecord, error)
	// GetOrCreate returns the notebook with name, creating it if needed.
	GetOrCreate(ctx context.Context, name string) (*NotebookRecord, error)
	// GetByName returns ErrNotFound if no notebook has that name.
	GetByName(ctx context.Context, name string) (*NotebookRecord, error)
	// List returns all notebooks ordered by name.
	List(ctx context.Context) ([]NotebookRecord, error)
	// Delete removes the notebook and, through cascades, everything that belongs to it.
	Delete(ctx context.Context, id int64) error
}

// NotebookRepo provides methods for notebook operations.
// It implements the NotebookStore interface.
type NotebookRepo struct {
	db *sql.DB
}

// NewNotebookRepo creates a new NotebookRepo.
func NewNotebookRepo(db *sql.DB) *NotebookRepo {
	return &NotebookRepo{db: db}
}

// DB exposes the underlying handle for aggregate queries.
func (r *NotebookRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new notebook.
func (r *NotebookRepo) Create(ctx context.Context, name string) (*NotebookRecord, error) {
	result, err := r.db.ExecContext(ctx, "INSERT INTO notebooks (name) VALUES (?)", name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert notebook: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get notebook id: %w", err)
	}

	return r.getByID(ctx, id)
}

// GetOrCreate gets an existing notebook by name, or creates it if it doesn't exist.
func (r *NotebookRepo) GetOrCreate(ctx context.Context, name string) (*NotebookRecord, error) {
	nb, err := r.GetByName(ctx, name)
	if err == nil {
		return nb, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	nb, err = r.Create(ctx, name)
	if errors.Is(err, ErrAlreadyExists) {
		// Lost a race with a concurrent create.
		return r.GetByName(ctx, name)
	}
	return nb, err
}

// GetByName gets a notebook by its unique name.
func (r *NotebookRepo) GetByName(ctx context.Context, name string) (*NotebookRecord, error) {
	var nb NotebookRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM notebooks WHERE name = ?",
		name,
	).Scan(&nb.ID, &nb.Name, &nb.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook: %w", err)
	}
	return &nb, nil
}

func (r *NotebookRepo) getByID(ctx context.Context, id int64) (*NotebookRecord, error) {
	var nb NotebookRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM notebooks WHERE id = ?",
		id,
	).Scan(&nb.ID, &nb.Name, &nb.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook: %w", err)
	}
	return &nb, nil
}

// List returns all notebooks ordered by name.
func (r *NotebookRepo) List(ctx context.Context) ([]NotebookRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM notebooks ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notebooks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notebooks := []NotebookRecord{}
	for rows.Next() {
		var nb NotebookRecord
		if err := rows.Scan(&nb.ID, &nb.Name, &nb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notebook: %w", err)
		}
		notebooks = append(notebooks, nb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notebooks, nil
}

// Delete deletes a notebook by ID. Returns ErrNotFound if nothing was deleted.
func (r *NotebookRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notebooks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

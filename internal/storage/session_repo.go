package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_session_store.go -package=mocks notebook-ai/internal/storage SessionStore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// SessionStore defines the interface for chat session storage operations.
type SessionStore interface {
	// Create starts a new session for the notebook and source filter. ID is generated.
	Create(ctx context.Context, notebookID int64, source string) (*SessionRecord, error)
	// Get returns ErrNotFound if the session does not exist.
	Get(ctx context.Context, id string) (*SessionRecord, error)
	// Delete removes a session and its messages. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
	// AppendMessages adds messages to the session in order.
	AppendMessages(ctx context.Context, sessionID string, messages ...MessageRecord) error
	// Messages returns the full history of a session, oldest first.
	Messages(ctx context.Context, sessionID string) ([]MessageRecord, error)
	// RecentMessages returns at most limit of the latest messages, oldest first.
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]MessageRecord, error)
}

// SessionRepo provides methods for session and message operations.
// It implements the SessionStore interface.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new SessionRepo.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session.
func (r *SessionRepo) Create(ctx context.Context, notebookID int64, source string) (*SessionRecord, error) {
	id := uuid.New().String()
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (id, notebook_id, source) VALUES (?, ?, ?)",
		id, notebookID, source,
	); err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}
	return r.Get(ctx, id)
}

// Get gets a session by ID.
func (r *SessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	var s SessionRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, notebook_id, source, created_at FROM sessions WHERE id = ?",
		id,
	).Scan(&s.ID, &s.NotebookID, &s.Source, &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &s, nil
}

// Delete deletes a session. Messages are removed by the cascade.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
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

// AppendMessages inserts messages in a single transaction.
func (r *SessionRepo) AppendMessages(ctx context.Context, sessionID string, messages ...MessageRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range messages {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO messages (session_id, role, content) VALUES (?, ?, ?)",
			sessionID, m.Role, m.Content,
		); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit messages: %w", err)
	}
	return nil
}

// Messages returns every message of the session, oldest first.
func (r *SessionRepo) Messages(ctx context.Context, sessionID string) ([]MessageRecord, error) {
	return r.queryMessages(ctx,
		"SELECT id, session_id, role, content, created_at FROM messages WHERE session_id = ? ORDER BY id",
		sessionID,
	)
}

// RecentMessages returns the latest limit messages, oldest first.
// A limit of zero or less returns an empty slice.
func (r *SessionRepo) RecentMessages(ctx context.Context, sessionID string, limit int) ([]MessageRecord, error) {
	if limit <= 0 {
		return []MessageRecord{}, nil
	}
	messages, err := r.queryMessages(ctx,
		"SELECT id, session_id, role, content, created_at FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?",
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	slices.Reverse(messages)
	return messages, nil
}

func (r *SessionRepo) queryMessages(ctx context.Context, query string, args ...any) ([]MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := []MessageRecord{}
	for rows.Next() {
		var m MessageRecord
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return messages, nil
}

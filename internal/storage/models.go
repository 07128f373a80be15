package storage

import "time"

// NotebookRecord is a named collection of uploaded documents.
type NotebookRecord struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// DocumentRecord is one uploaded PDF inside a notebook.
type DocumentRecord struct {
	ID         string // UUID
	NotebookID int64  // Foreign key to notebooks.id
	Source     string // Base filename, unique within the notebook
	Path       string // Where the file is stored on disk
	Hash       string // SHA256 hex string of file content
	PageCount  int
	Content    string // Extracted text
	UpdatedAt  time.Time
}

// ChunkRecord is a chunk of document text indexed for vector search.
type ChunkRecord struct {
	ID         string // UUID (same as the vector point ID)
	DocumentID string // UUID (foreign key to documents.id)
	ChunkIndex int    // Index within document (starts at 0)
	Text       string
}

// SessionRecord is one chat conversation scoped to a notebook and an optional source filter.
type SessionRecord struct {
	ID         string
	NotebookID int64
	Source     string // "" means all documents
	CreatedAt  time.Time
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessageRecord is one turn of a chat session.
type MessageRecord struct {
	ID        int64
	SessionID string
	Role      string
	Content   string
	CreatedAt time.Time
}

// Artifact kinds.
const (
	ArtifactSummary    = "summary"
	ArtifactStudyGuide = "study_guide"
)

// ArtifactRecord caches generated text (summary, study guide) per notebook and source.
type ArtifactRecord struct {
	NotebookID int64
	Source     string
	Kind       string
	Content    string
	UpdatedAt  time.Time
}

package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// newTestDB opens a migrated database in a temp dir.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

// seedDocument creates a notebook and one document in it.
func seedDocument(t *testing.T, db *sql.DB, notebook, source string) (*NotebookRecord, *DocumentRecord) {
	t.Helper()
	ctx := context.Background()
	nb, err := NewNotebookRepo(db).GetOrCreate(ctx, notebook)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	doc := &DocumentRecord{
		NotebookID: nb.ID,
		Source:     source,
		Path:       "/data/" + notebook + "/" + source,
		Hash:       "hash",
		PageCount:  1,
		Content:    "content of " + source,
	}
	if err := NewDocumentRepo(db).Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	return nb, doc
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db == nil {
				t.Fatal("New() returned nil database")
			}

			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestNew_EnablesForeignKeys(t *testing.T) {
	db := newTestDB(t)

	var fkEnabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("Failed to check foreign keys: %v", err)
	}

	if fkEnabled != 1 {
		t.Error("New() should enable foreign keys")
	}
}

var tables = []string{"notebooks", "documents", "chunks", "sessions", "messages", "artifacts"}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Migrate() table %s not created", table)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Migrate() table %s not found after second run", table)
		}
	}
}

func TestDeleteNotebook_Cascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	nb, doc := seedDocument(t, db, "physics", "a.pdf")

	if err := NewChunkRepo(db).Insert(ctx, &ChunkRecord{ID: "c1", DocumentID: doc.ID, Text: "text"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	sessions := NewSessionRepo(db)
	session, err := sessions.Create(ctx, nb.ID, "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := sessions.AppendMessages(ctx, session.ID, MessageRecord{Role: RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("AppendMessages() error = %v", err)
	}
	if err := NewArtifactRepo(db).Put(ctx, &ArtifactRecord{NotebookID: nb.ID, Kind: ArtifactSummary, Content: "s"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if err := NewNotebookRepo(db).Delete(ctx, nb.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	for _, table := range tables {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("table %s has %d rows after notebook delete, want 0", table, count)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.Exec("INSERT INTO notebooks (name) VALUES ('dup')"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := db.Exec("INSERT INTO notebooks (name) VALUES ('dup')")
	if !isUniqueViolation(err) {
		t.Errorf("isUniqueViolation(%v) = false, want true", err)
	}
	if isUniqueViolation(nil) {
		t.Error("isUniqueViolation(nil) = true, want false")
	}
}

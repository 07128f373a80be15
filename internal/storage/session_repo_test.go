package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestSessionRepo_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	nb, _ := seedDocument(t, db, "nb", "a.pdf")
	repo := NewSessionRepo(db)

	s, err := repo.Create(ctx, nb.ID, "a.pdf")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID == "" || s.NotebookID != nb.ID || s.Source != "a.pdf" {
		t.Errorf("Create() = %+v, want session bound to notebook %d and a.pdf", s, nb.ID)
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != s.ID || got.Source != "a.pdf" {
		t.Errorf("Get() = %+v, want %+v", got, s)
	}

	if err := repo.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() missing error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepo_CreateUnknownNotebook(t *testing.T) {
	repo := NewSessionRepo(newTestDB(t))
	if _, err := repo.Create(context.Background(), 424242, ""); err == nil {
		t.Error("Create() for unknown notebook should fail the foreign key")
	}
}

func TestSessionRepo_Messages(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	nb, _ := seedDocument(t, db, "nb", "a.pdf")
	repo := NewSessionRepo(db)

	s, err := repo.Create(ctx, nb.ID, "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 0; i < 6; i++ {
		err := repo.AppendMessages(ctx, s.ID,
			MessageRecord{Role: RoleUser, Content: fmt.Sprintf("q%d", i)},
			MessageRecord{Role: RoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
		if err != nil {
			t.Fatalf("AppendMessages() error = %v", err)
		}
	}

	all, err := repo.Messages(ctx, s.ID)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(all) != 12 {
		t.Fatalf("Messages() = %d, want 12", len(all))
	}
	if all[0].Content != "q0" || all[0].Role != RoleUser || all[11].Content != "a5" {
		t.Errorf("Messages() order wrong: first=%+v last=%+v", all[0], all[11])
	}

	tests := []struct {
		name      string
		limit     int
		wantLen   int
		wantFirst string
	}{
		{name: "window of five exchanges", limit: 10, wantLen: 10, wantFirst: "q1"},
		{name: "limit larger than history", limit: 50, wantLen: 12, wantFirst: "q0"},
		{name: "zero limit", limit: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.RecentMessages(ctx, s.ID, tt.limit)
			if err != nil {
				t.Fatalf("RecentMessages() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("RecentMessages() = %d messages, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 {
				if got[0].Content != tt.wantFirst {
					t.Errorf("RecentMessages()[0] = %q, want %q", got[0].Content, tt.wantFirst)
				}
				if got[len(got)-1].Content != "a5" {
					t.Errorf("RecentMessages() last = %q, want a5", got[len(got)-1].Content)
				}
			}
		})
	}
}

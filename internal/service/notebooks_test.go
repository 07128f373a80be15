package service_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"notebook-ai/internal/indexer"
	"notebook-ai/internal/notebook"
	"notebook-ai/internal/service"
	"notebook-ai/internal/service/mocks"
	"notebook-ai/internal/storage"
)

func newNotebookService(t *testing.T) (service.NotebookService, *mocks.MockNotebookManager, *mocks.MockIndexer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockNotebookManager(ctrl)
	idx := mocks.NewMockIndexer(ctrl)
	return service.NewNotebookService(manager, idx, "text-embedding-004"), manager, idx
}

func TestNotebookService_Create(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		storeErr  error
		wantErr   error
		wantField string
	}{
		{name: "created"},
		{name: "duplicate", storeErr: storage.ErrAlreadyExists, wantErr: service.ErrConflict},
		{name: "invalid name", storeErr: fmt.Errorf("%w: bad", notebook.ErrInvalidName), wantErr: service.ErrInvalidInput, wantField: "name"},
		{name: "storage failure", storeErr: errors.New("disk full")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, manager, _ := newNotebookService(t)

			if tt.storeErr != nil {
				manager.EXPECT().Create(gomock.Any(), "Biology").Return(nil, tt.storeErr)
			} else {
				manager.EXPECT().Create(gomock.Any(), "Biology").Return(&storage.NotebookRecord{ID: 1, Name: "Biology", CreatedAt: created}, nil)
			}

			nb, err := svc.Create(testContext(), "Biology")
			if tt.storeErr == nil {
				if err != nil {
					t.Fatalf("Create() error = %v", err)
				}
				if nb.Name != "Biology" || !nb.CreatedAt.Equal(created) {
					t.Errorf("Create() = %+v", nb)
				}
				return
			}
			if err == nil {
				t.Fatal("Create() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantField != "" {
				var validationErr *service.ValidationError
				if !errors.As(err, &validationErr) || validationErr.Field != tt.wantField {
					t.Errorf("Create() error = %v, want validation error on %s", err, tt.wantField)
				}
			}
		})
	}
}

func TestNotebookService_List(t *testing.T) {
	svc, manager, _ := newNotebookService(t)

	manager.EXPECT().List(gomock.Any()).Return([]storage.NotebookRecord{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, nil)

	notebooks, err := svc.List(testContext())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notebooks) != 2 || notebooks[0].Name != "a" || notebooks[1].Name != "b" {
		t.Errorf("List() = %+v", notebooks)
	}
}

func TestNotebookService_List_Empty(t *testing.T) {
	svc, manager, _ := newNotebookService(t)

	manager.EXPECT().List(gomock.Any()).Return(nil, nil)

	notebooks, err := svc.List(testContext())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if notebooks == nil || len(notebooks) != 0 {
		t.Errorf("List() = %#v, want empty slice", notebooks)
	}
}

func TestNotebookService_Delete(t *testing.T) {
	svc, manager, idx := newNotebookService(t)
	nb := &storage.NotebookRecord{ID: 7, Name: "history"}

	manager.EXPECT().Get(gomock.Any(), "history").Return(nb, nil)
	idx.EXPECT().DeleteNotebook(gomock.Any(), nb).Return(nil)

	if err := svc.Delete(testContext(), "history"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestNotebookService_Delete_NotFound(t *testing.T) {
	svc, manager, _ := newNotebookService(t)

	manager.EXPECT().Get(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	if err := svc.Delete(testContext(), "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestNotebookService_Sources(t *testing.T) {
	svc, _, idx := newNotebookService(t)

	idx.EXPECT().Sources(gomock.Any(), "history").Return([]string{"a.pdf", "b.pdf"}, nil)

	sources, err := svc.Sources(testContext(), "history")
	if err != nil {
		t.Fatalf("Sources() error = %v", err)
	}
	if !reflect.DeepEqual(sources, []string{"a.pdf", "b.pdf"}) {
		t.Errorf("Sources() = %v", sources)
	}
}

func TestNotebookService_Upload(t *testing.T) {
	svc, manager, idx := newNotebookService(t)
	nb := &storage.NotebookRecord{ID: 7, Name: "history"}
	files := []indexer.UploadedFile{{Filename: "rome.pdf", Content: strings.NewReader("%PDF")}}
	report := &indexer.IndexReport{Notebook: "history", Indexed: []string{"rome.pdf"}, Chunks: 3}

	manager.EXPECT().GetOrCreate(gomock.Any(), "history").Return(nb, nil)
	idx.EXPECT().IndexFiles(gomock.Any(), nb, files).Return(report, nil)

	got, err := svc.Upload(testContext(), "history", files)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if got != report {
		t.Errorf("Upload() = %+v, want %+v", got, report)
	}
}

func TestNotebookService_Upload_Errors(t *testing.T) {
	files := []indexer.UploadedFile{{Filename: "rome.pdf", Content: strings.NewReader("%PDF")}}

	t.Run("no files", func(t *testing.T) {
		svc, _, _ := newNotebookService(t)
		_, err := svc.Upload(testContext(), "history", nil)
		var validationErr *service.ValidationError
		if !errors.As(err, &validationErr) || validationErr.Field != "files" {
			t.Errorf("Upload() error = %v, want validation error on files", err)
		}
	})

	t.Run("invalid notebook name", func(t *testing.T) {
		svc, manager, _ := newNotebookService(t)
		manager.EXPECT().GetOrCreate(gomock.Any(), "..").Return(nil, notebook.ErrInvalidName)
		if _, err := svc.Upload(testContext(), "..", files); !errors.Is(err, service.ErrInvalidInput) {
			t.Errorf("Upload() error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("indexing failure", func(t *testing.T) {
		svc, manager, idx := newNotebookService(t)
		nb := &storage.NotebookRecord{ID: 7, Name: "history"}
		manager.EXPECT().GetOrCreate(gomock.Any(), "history").Return(nb, nil)
		idx.EXPECT().IndexFiles(gomock.Any(), nb, files).Return(nil, errors.New("quota exceeded"))
		if _, err := svc.Upload(testContext(), "history", files); !errors.Is(err, service.ErrExternalService) {
			t.Errorf("Upload() error = %v, want ErrExternalService", err)
		}
	})
}

func TestNotebookService_Reindex(t *testing.T) {
	t.Run("incremental", func(t *testing.T) {
		svc, _, idx := newNotebookService(t)
		idx.EXPECT().IndexAll(gomock.Any()).Return(nil)
		if err := svc.Reindex(testContext(), false); err != nil {
			t.Errorf("Reindex() error = %v", err)
		}
	})

	t.Run("force clears first", func(t *testing.T) {
		svc, _, idx := newNotebookService(t)
		gomock.InOrder(
			idx.EXPECT().ClearAll(gomock.Any()).Return(nil),
			idx.EXPECT().IndexAll(gomock.Any()).Return(nil),
		)
		if err := svc.Reindex(testContext(), true); err != nil {
			t.Errorf("Reindex() error = %v", err)
		}
	})

	t.Run("clear failure stops", func(t *testing.T) {
		svc, _, idx := newNotebookService(t)
		idx.EXPECT().ClearAll(gomock.Any()).Return(errors.New("locked"))
		if err := svc.Reindex(testContext(), true); err == nil {
			t.Error("Reindex() expected error, got nil")
		}
	})
}

func TestNotebookService_Stats(t *testing.T) {
	svc, _, idx := newNotebookService(t)
	want := &indexer.IndexingCoverageStats{DocsProcessed: 2, ChunkerVersion: indexer.ChunkerVersion}

	idx.EXPECT().GetIndexingCoverageStats(gomock.Any(), "text-embedding-004").Return(want, nil)

	got, err := svc.Stats(testContext())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

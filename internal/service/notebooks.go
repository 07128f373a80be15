package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notebooks.go -package=mocks notebook-ai/internal/service NotebookManager,Indexer,NotebookService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/indexer"
	"notebook-ai/internal/notebook"
	"notebook-ai/internal/storage"
)

// NotebookManager is the subset of notebook.Manager the service needs.
type NotebookManager interface {
	Create(ctx context.Context, name string) (*storage.NotebookRecord, error)
	GetOrCreate(ctx context.Context, name string) (*storage.NotebookRecord, error)
	Get(ctx context.Context, name string) (*storage.NotebookRecord, error)
	List(ctx context.Context) ([]storage.NotebookRecord, error)
}

// Indexer is the subset of indexer.Pipeline the service needs.
type Indexer interface {
	IndexFiles(ctx context.Context, nb *storage.NotebookRecord, files []indexer.UploadedFile) (*indexer.IndexReport, error)
	IndexAll(ctx context.Context) error
	ClearAll(ctx context.Context) error
	Sources(ctx context.Context, name string) ([]string, error)
	DeleteNotebook(ctx context.Context, nb *storage.NotebookRecord) error
	GetIndexingCoverageStats(ctx context.Context, embeddingModelName string) (*indexer.IndexingCoverageStats, error)
}

// Notebook is the public view of a notebook.
type Notebook struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type uploadInput struct {
	Notebook string                 `json:"notebook" validate:"required"`
	Files    []indexer.UploadedFile `json:"files" validate:"min=1,max=50"`
}

// NotebookService manages notebooks and their documents.
type NotebookService interface {
	Create(ctx context.Context, name string) (Notebook, error)
	List(ctx context.Context) ([]Notebook, error)
	Delete(ctx context.Context, name string) error
	Sources(ctx context.Context, name string) ([]string, error)
	// Upload stores and indexes PDFs, creating the notebook when needed.
	Upload(ctx context.Context, name string, files []indexer.UploadedFile) (*indexer.IndexReport, error)
	// Reindex rebuilds the index from the files on disk. force drops the current index first.
	Reindex(ctx context.Context, force bool) error
	Stats(ctx context.Context) (*indexer.IndexingCoverageStats, error)
}

type notebookService struct {
	notebooks          NotebookManager
	indexer            Indexer
	embeddingModelName string
}

// NewNotebookService creates a new NotebookService.
func NewNotebookService(notebooks NotebookManager, idx Indexer, embeddingModelName string) NotebookService {
	return &notebookService{
		notebooks:          notebooks,
		indexer:            idx,
		embeddingModelName: embeddingModelName,
	}
}

func (s *notebookService) Create(ctx context.Context, name string) (Notebook, error) {
	nb, err := s.notebooks.Create(ctx, name)
	if err != nil {
		return Notebook{}, s.mapError(err, name)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "notebook created", "notebook", nb.Name)
	return toNotebook(nb), nil
}

func (s *notebookService) List(ctx context.Context) ([]Notebook, error) {
	records, err := s.notebooks.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list notebooks")
	}
	notebooks := make([]Notebook, 0, len(records))
	for i := range records {
		notebooks = append(notebooks, toNotebook(&records[i]))
	}
	return notebooks, nil
}

func (s *notebookService) Delete(ctx context.Context, name string) error {
	nb, err := s.notebooks.Get(ctx, name)
	if err != nil {
		return s.mapError(err, name)
	}
	if err := s.indexer.DeleteNotebook(ctx, nb); err != nil {
		return WrapError(err, "failed to delete notebook")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "notebook deleted", "notebook", name)
	return nil
}

func (s *notebookService) Sources(ctx context.Context, name string) ([]string, error) {
	sources, err := s.indexer.Sources(ctx, name)
	if err != nil {
		return nil, WrapError(err, "failed to list sources")
	}
	return sources, nil
}

func (s *notebookService) Upload(ctx context.Context, name string, files []indexer.UploadedFile) (*indexer.IndexReport, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateStruct(uploadInput{Notebook: name, Files: files}); err != nil {
		return nil, err
	}

	nb, err := s.notebooks.GetOrCreate(ctx, name)
	if err != nil {
		return nil, s.mapError(err, name)
	}

	report, err := s.indexer.IndexFiles(ctx, nb, files)
	if err != nil {
		logger.ErrorContext(ctx, "failed to index uploads", "notebook", name, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	logger.InfoContext(ctx, "upload processed",
		"notebook", name,
		"indexed", len(report.Indexed),
		"unchanged", len(report.Unchanged),
		"skipped", len(report.Skipped),
		"chunks", report.Chunks,
	)
	return report, nil
}

func (s *notebookService) Reindex(ctx context.Context, force bool) error {
	logger := contextutil.LoggerFromContext(ctx)
	if force {
		if err := s.indexer.ClearAll(ctx); err != nil {
			return WrapError(err, "failed to clear index")
		}
		logger.InfoContext(ctx, "cleared all existing indexed data")
	}
	if err := s.indexer.IndexAll(ctx); err != nil {
		return WrapError(err, "re-indexing completed with errors")
	}
	return nil
}

func (s *notebookService) Stats(ctx context.Context) (*indexer.IndexingCoverageStats, error) {
	stats, err := s.indexer.GetIndexingCoverageStats(ctx, s.embeddingModelName)
	if err != nil {
		return nil, WrapError(err, "failed to compute indexing stats")
	}
	return stats, nil
}

func (s *notebookService) mapError(err error, name string) error {
	switch {
	case errors.Is(err, notebook.ErrInvalidName):
		return &ValidationError{Field: "name", Message: err.Error()}
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: notebook %s", ErrNotFound, name)
	case errors.Is(err, storage.ErrAlreadyExists):
		return fmt.Errorf("%w: notebook %s", ErrConflict, name)
	default:
		return WrapError(err, "notebook operation failed")
	}
}

func toNotebook(nb *storage.NotebookRecord) Notebook {
	return Notebook{Name: nb.Name, CreatedAt: nb.CreatedAt}
}

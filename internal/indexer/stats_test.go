package indexer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"notebook-ai/internal/storage"
	storage_mocks "notebook-ai/internal/storage/mocks"
)

func TestGetIndexingCoverageStats(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	notebookRepo := storage.NewNotebookRepo(db)
	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)

	pipeline := &Pipeline{
		documentRepo: documentRepo,
		chunkRepo:    chunkRepo,
		chunker:      NewRecursiveChunker(DefaultChunkSize, DefaultChunkOverlap),
	}

	ctx := context.Background()
	embeddingModelName := "test-embedding-model"

	// Empty database
	stats, err := pipeline.GetIndexingCoverageStats(ctx, embeddingModelName)
	if err != nil {
		t.Fatalf("GetIndexingCoverageStats() error = %v", err)
	}
	if stats.DocsProcessed != 0 {
		t.Errorf("DocsProcessed = %d, want 0", stats.DocsProcessed)
	}
	if stats.DocsWith0Chunks != 0 {
		t.Errorf("DocsWith0Chunks = %d, want 0", stats.DocsWith0Chunks)
	}
	if stats.ChunksEmbedded != 0 {
		t.Errorf("ChunksEmbedded = %d, want 0", stats.ChunksEmbedded)
	}
	if stats.ChunkerVersion != ChunkerVersion {
		t.Errorf("ChunkerVersion = %s, want %s", stats.ChunkerVersion, ChunkerVersion)
	}
	if stats.IndexVersion == "" {
		t.Error("IndexVersion should not be empty")
	}

	nb, err := notebookRepo.Create(ctx, "history")
	if err != nil {
		t.Fatalf("failed to create notebook: %v", err)
	}

	// Two documents with chunks, one without.
	docs := []*storage.DocumentRecord{
		{ID: "doc-1", NotebookID: nb.ID, Source: "a.pdf", Hash: "h1"},
		{ID: "doc-2", NotebookID: nb.ID, Source: "b.pdf", Hash: "h2"},
		{ID: "doc-3", NotebookID: nb.ID, Source: "c.pdf", Hash: "h3"},
	}
	for _, doc := range docs {
		if err := documentRepo.Upsert(ctx, doc); err != nil {
			t.Fatalf("failed to insert document: %v", err)
		}
	}

	chunks := []*storage.ChunkRecord{
		{ID: "chunk-1", DocumentID: "doc-1", ChunkIndex: 0, Text: strings.Repeat("a", 40)},  // 10 tokens
		{ID: "chunk-2", DocumentID: "doc-1", ChunkIndex: 1, Text: strings.Repeat("b", 80)},  // 20 tokens
		{ID: "chunk-3", DocumentID: "doc-2", ChunkIndex: 0, Text: strings.Repeat("é", 120)}, // 30 tokens, runes not bytes
	}
	for _, chunk := range chunks {
		if err := chunkRepo.Insert(ctx, chunk); err != nil {
			t.Fatalf("failed to insert chunk: %v", err)
		}
	}

	stats, err = pipeline.GetIndexingCoverageStats(ctx, embeddingModelName)
	if err != nil {
		t.Fatalf("GetIndexingCoverageStats() error = %v", err)
	}
	if stats.DocsProcessed != 3 {
		t.Errorf("DocsProcessed = %d, want 3", stats.DocsProcessed)
	}
	if stats.DocsWith0Chunks != 1 {
		t.Errorf("DocsWith0Chunks = %d, want 1", stats.DocsWith0Chunks)
	}
	if stats.ChunksEmbedded != 3 {
		t.Errorf("ChunksEmbedded = %d, want 3", stats.ChunksEmbedded)
	}
	want := ChunkTokenStats{Min: 10, Max: 30, Mean: 20, P95: 30}
	if stats.ChunkTokenStats != want {
		t.Errorf("ChunkTokenStats = %+v, want %+v", stats.ChunkTokenStats, want)
	}
}

func TestIndexVersion(t *testing.T) {
	base := IndexVersion("text-embedding-004", 1500, 200)
	if len(base) != 16 {
		t.Errorf("IndexVersion() length = %d, want 16", len(base))
	}
	if base != IndexVersion("text-embedding-004", 1500, 200) {
		t.Error("IndexVersion() should be deterministic")
	}

	others := []string{
		IndexVersion("other-model", 1500, 200),
		IndexVersion("text-embedding-004", 1000, 200),
		IndexVersion("text-embedding-004", 1500, 100),
	}
	for i, other := range others {
		if other == base {
			t.Errorf("IndexVersion() variant %d should differ from base", i)
		}
	}
}

func TestComputeTokenStats(t *testing.T) {
	tests := []struct {
		name        string
		tokenCounts []int
		want        ChunkTokenStats
	}{
		{
			name:        "empty",
			tokenCounts: []int{},
			want:        ChunkTokenStats{},
		},
		{
			name:        "single value",
			tokenCounts: []int{10},
			want: ChunkTokenStats{
				Min:  10,
				Max:  10,
				Mean: 10.0,
				P95:  10,
			},
		},
		{
			name:        "multiple values",
			tokenCounts: []int{5, 10, 15, 20, 25},
			want: ChunkTokenStats{
				Min:  5,
				Max:  25,
				Mean: 15.0,
				P95:  25, // 95th percentile of 5 values = index 4 (0-indexed) = 25
			},
		},
		{
			name:        "unsorted values",
			tokenCounts: []int{30, 5, 20, 10, 15},
			want: ChunkTokenStats{
				Min:  5,
				Max:  30,
				Mean: 16.0, // (30+5+20+10+15)/5 = 16
				P95:  30,
			},
		},
		{
			name:        "many values for p95",
			tokenCounts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			want: ChunkTokenStats{
				Min:  1,
				Max:  20,
				Mean: 10.5,
				P95:  20, // 95th percentile of 20 values = index 19 = 20
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeTokenStats(tt.tokenCounts)
			if got.Min != tt.want.Min {
				t.Errorf("Min = %d, want %d", got.Min, tt.want.Min)
			}
			if got.Max != tt.want.Max {
				t.Errorf("Max = %d, want %d", got.Max, tt.want.Max)
			}
			if got.Mean != tt.want.Mean {
				t.Errorf("Mean = %f, want %f", got.Mean, tt.want.Mean)
			}
			if got.P95 != tt.want.P95 {
				t.Errorf("P95 = %d, want %d", got.P95, tt.want.P95)
			}
		})
	}
}

func TestGetIndexingCoverageStats_ErrorHandling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDocumentRepo := storage_mocks.NewMockDocumentStore(ctrl)
	mockChunkRepo := storage_mocks.NewMockChunkStore(ctrl)

	pipeline := &Pipeline{
		documentRepo: mockDocumentRepo,
		chunkRepo:    mockChunkRepo,
		chunker:      NewRecursiveChunker(DefaultChunkSize, DefaultChunkOverlap),
	}

	ctx := context.Background()

	mockDocumentRepo.EXPECT().Counts(gomock.Any()).Return(0, 0, errors.New("db closed"))
	if _, err := pipeline.GetIndexingCoverageStats(ctx, "test-model"); err == nil {
		t.Error("GetIndexingCoverageStats() should return error when counting fails")
	}

	mockDocumentRepo.EXPECT().Counts(gomock.Any()).Return(2, 0, nil)
	mockChunkRepo.EXPECT().TextLengths(gomock.Any()).Return(nil, errors.New("db closed"))
	if _, err := pipeline.GetIndexingCoverageStats(ctx, "test-model"); err == nil {
		t.Error("GetIndexingCoverageStats() should return error when listing chunks fails")
	}
}

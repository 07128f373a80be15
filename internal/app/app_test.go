package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"notebook-ai/internal/config"
	"notebook-ai/internal/llm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LLMProvider:        config.ProviderOpenAI,
		LLMBaseURL:         "http://127.0.0.1:1",
		LLMModelName:       "test-model",
		LLMAPIKey:          "test-key",
		EmbeddingBaseURL:   "http://127.0.0.1:1",
		EmbeddingModelName: "test-embedding",
		VectorStore:        config.VectorStoreMemory,
		QdrantCollection:   "notebooks",
		VectorSize:         3,
		DBPath:             filepath.Join(dir, "notebook-ai.db"),
		SourceDir:          filepath.Join(dir, "source_documents"),
		AudioDir:           filepath.Join(dir, "audio"),
		ChunkSize:          200,
		ChunkOverlap:       20,
		RetrievalK:         4,
		MemoryWindow:       5,
		ChatTemperature:    0.2,
		ChatMaxTokens:      512,
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	models, err := NewModels(ctx, cfg)
	if err != nil {
		t.Fatalf("NewModels() error = %v", err)
	}
	if models.EmbeddingModelName != "test-embedding" {
		t.Errorf("EmbeddingModelName = %q, want test-embedding", models.EmbeddingModelName)
	}

	a, err := New(ctx, cfg, models)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	if a.Chat == nil || a.Notebooks == nil || a.Tools == nil || a.Pipeline == nil {
		t.Fatal("New() should assemble every service")
	}

	exists, err := a.VectorStore.CollectionExists(ctx, cfg.QdrantCollection)
	if err != nil || !exists {
		t.Errorf("CollectionExists() = %v, %v, want true", exists, err)
	}

	if _, err := a.Notebooks.Create(ctx, "history"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	notebooks, err := a.Notebooks.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notebooks) != 1 || notebooks[0].Name != "history" {
		t.Errorf("List() = %+v, want [history]", notebooks)
	}
}

func TestNewModels_Errors(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t)
	cfg.LLMProvider = "mistral"
	if _, err := NewModels(ctx, cfg); err == nil {
		t.Error("NewModels() should reject an unknown provider")
	}

	cfg = testConfig(t)
	cfg.LLMProvider = config.ProviderGemini
	if _, err := NewModels(ctx, cfg); err == nil {
		t.Error("NewModels() should require a Gemini API key")
	}
}

func TestNewVectorStore_Unsupported(t *testing.T) {
	cfg := testConfig(t)
	cfg.VectorStore = "pinecone"
	if _, _, err := NewVectorStore(context.Background(), cfg); err == nil {
		t.Error("NewVectorStore() should reject an unknown backend")
	}
}

func TestCheckEmbeddings(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "matching size", size: 3},
		{name: "size mismatch", size: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(llm.EmbeddingsResponse{
					Data: []llm.EmbeddingData{{Index: 0, Embedding: make([]float64, tt.size)}},
				})
			}))
			defer server.Close()

			cfg := testConfig(t)
			a := &App{
				Config:   cfg,
				Embedder: llm.NewEmbeddingsClient(server.URL, "key", "model", tt.size),
			}

			err := a.CheckEmbeddings(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckEmbeddings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

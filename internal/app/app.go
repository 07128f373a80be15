// Package app wires configuration into the services shared by the API server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"notebook-ai/internal/config"
	"notebook-ai/internal/extract"
	"notebook-ai/internal/gemini"
	"notebook-ai/internal/indexer"
	"notebook-ai/internal/llm"
	"notebook-ai/internal/notebook"
	"notebook-ai/internal/rag"
	"notebook-ai/internal/service"
	"notebook-ai/internal/storage"
	"notebook-ai/internal/vectorstore"
)

// App holds the assembled services.
type App struct {
	Config *config.Config

	VectorStore vectorstore.VectorStore
	Embedder    llm.Embedder
	Pipeline    *indexer.Pipeline

	Chat      service.ChatService
	Notebooks service.NotebookService
	Tools     service.ToolsService

	closers []io.Closer
}

// Models bundles the provider-specific model clients.
type Models struct {
	Chat     llm.ChatModel
	Embedder llm.Embedder
	Speaker  llm.Speaker
	// EmbeddingModelName identifies the embedding model in index statistics.
	EmbeddingModelName string
}

// NewModels builds the chat, embedding and speech clients for cfg.LLMProvider.
func NewModels(ctx context.Context, cfg *config.Config) (*Models, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		return &Models{
			Chat:               gemini.NewChatModel(client.Models, cfg.GeminiChatModel),
			Embedder:           gemini.NewEmbedder(client.Models, cfg.GeminiEmbeddingModel, cfg.VectorSize),
			Speaker:            gemini.NewSpeaker(client.Models, cfg.GeminiTTSModel, cfg.GeminiTTSVoice),
			EmbeddingModelName: cfg.GeminiEmbeddingModel,
		}, nil
	case config.ProviderOpenAI:
		return &Models{
			Chat:               llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName),
			Embedder:           llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.VectorSize),
			Speaker:            llm.NewSpeechClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.SpeechModelName, cfg.SpeechVoice),
			EmbeddingModelName: cfg.EmbeddingModelName,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
}

// NewVectorStore opens the configured vector store and makes sure the collection exists.
func NewVectorStore(ctx context.Context, cfg *config.Config) (vectorstore.VectorStore, io.Closer, error) {
	var (
		store  vectorstore.VectorStore
		closer io.Closer
	)
	switch cfg.VectorStore {
	case config.VectorStoreMemory:
		store = vectorstore.NewMemoryStore()
	case config.VectorStoreQdrant:
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Qdrant client: %w", err)
		}
		store, closer = qdrantStore, qdrantStore
	default:
		return nil, nil, fmt.Errorf("unsupported vector store %q", cfg.VectorStore)
	}

	if err := store.EnsureCollection(ctx, cfg.QdrantCollection, cfg.VectorSize); err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, nil, fmt.Errorf("failed to ensure collection: %w", err)
	}
	slog.Info("vector store ready", "backend", cfg.VectorStore, "collection", cfg.QdrantCollection, "vector_size", cfg.VectorSize)
	return store, closer, nil
}

// New opens the database and vector store and assembles every service.
func New(ctx context.Context, cfg *config.Config, models *Models) (*App, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a := &App{Config: cfg, closers: []io.Closer{db}}

	if err := storage.Migrate(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("database initialized", "path", cfg.DBPath)

	store, closer, err := NewVectorStore(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	a.wire(db, store, models)
	return a, nil
}

func (a *App) wire(db *sql.DB, store vectorstore.VectorStore, models *Models) {
	cfg := a.Config

	notebookRepo := storage.NewNotebookRepo(db)
	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	sessionRepo := storage.NewSessionRepo(db)
	artifactRepo := storage.NewArtifactRepo(db)

	manager := notebook.NewManager(notebookRepo, cfg.SourceDir)

	a.VectorStore = store
	a.Embedder = models.Embedder
	a.Pipeline = indexer.NewPipeline(
		manager,
		documentRepo,
		chunkRepo,
		artifactRepo,
		extract.NewExtractor(),
		models.Embedder,
		store,
		cfg.QdrantCollection,
		indexer.NewRecursiveChunker(cfg.ChunkSize, cfg.ChunkOverlap),
	)

	engine := rag.NewEngine(
		notebookRepo,
		documentRepo,
		chunkRepo,
		sessionRepo,
		models.Embedder,
		models.Chat,
		store,
		cfg.QdrantCollection,
		rag.Options{
			K:            cfg.RetrievalK,
			MemoryWindow: cfg.MemoryWindow,
			Temperature:  cfg.ChatTemperature,
			MaxTokens:    cfg.ChatMaxTokens,
		},
	)

	a.Chat = service.NewChatService(engine, sessionRepo)
	a.Notebooks = service.NewNotebookService(manager, a.Pipeline, models.EmbeddingModelName)
	a.Tools = service.NewToolsService(notebookRepo, documentRepo, artifactRepo, models.Chat, models.Speaker, cfg.AudioDir)
}

// CheckEmbeddings embeds a probe text and checks the vector size against the collection.
func (a *App) CheckEmbeddings(ctx context.Context) error {
	vecs, err := a.Embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		return fmt.Errorf("failed to validate embedding client: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) != a.Config.VectorSize {
		got := 0
		if len(vecs) > 0 {
			got = len(vecs[0])
		}
		return fmt.Errorf("embedding vector size mismatch: expected %d, got %d", a.Config.VectorSize, got)
	}
	return nil
}

// Close releases the database and vector store connections, last opened first.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

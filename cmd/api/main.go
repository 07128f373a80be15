package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notebook-ai/internal/app"
	"notebook-ai/internal/config"
	"notebook-ai/internal/http"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions about collections of PDF documents ("notebooks") using
// retrieval-augmented generation, and produces summaries, study guides and speech from them.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Notebook AI API
//   description: |
//     Upload PDFs into notebooks, ask questions answered only from their content with cited
//     passages, and generate summaries, study guides and spoken audio.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	models, err := app.NewModels(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create model clients: %v", err)
	}
	slog.Info("model clients ready", "provider", cfg.LLMProvider, "embedding_model", models.EmbeddingModelName)

	a, err := app.New(ctx, cfg, models)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	// Fail fast when the embedding model does not match the collection.
	if err := a.CheckEmbeddings(ctx); err != nil {
		log.Fatalf("%v", err)
	}
	slog.Info("embedding client validated", "vector_size", cfg.VectorSize)

	router := http.NewRouter(&http.Deps{
		ChatService:     a.Chat,
		NotebookService: a.Notebooks,
		ToolsService:    a.Tools,
		VectorStore:     a.VectorStore,
		CollectionName:  cfg.QdrantCollection,
	})

	// Index whatever is already on disk once the router is ready.
	go func() {
		slog.Info("starting background indexing of notebooks", "source_dir", cfg.SourceDir)
		if err := a.Pipeline.IndexAll(ctx); err != nil {
			slog.Error("indexing completed with errors", "error", err)
		} else {
			slog.Info("indexing completed successfully")
		}
	}()

	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting API server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}

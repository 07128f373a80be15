package handlers

import (
	"context"
	"net/http"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/service"
)

// IndexHandler handles HTTP requests for triggering re-indexing.
type IndexHandler struct {
	notebookService service.NotebookService
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(notebookService service.NotebookService) *IndexHandler {
	return &IndexHandler{notebookService: notebookService}
}

// IndexResponse represents the response from the index endpoint.
//
// swagger:model IndexResponse
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP handles HTTP requests for triggering re-indexing.
//
// swagger:route POST /api/index reindex
//
// # Re-index every notebook on disk
//
// Runs in the background. ?force=true clears the index first.
//
// responses:
//
//	'202': IndexResponse
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	force := r.URL.Query().Get("force") == "true"

	if force {
		logger.InfoContext(ctx, "force re-indexing triggered via API")
	} else {
		logger.InfoContext(ctx, "re-indexing triggered via API")
	}

	// Background context so indexing outlives the request.
	go func() {
		indexCtx := contextutil.WithLogger(context.Background(), logger)
		if err := h.notebookService.Reindex(indexCtx, force); err != nil {
			logger.ErrorContext(indexCtx, "re-indexing completed with errors", "error", err)
		} else {
			logger.InfoContext(indexCtx, "re-indexing completed successfully")
		}
	}()

	message := "Indexing started. Check server logs for progress."
	if force {
		message = "Force re-indexing started (all existing data cleared). Check server logs for progress."
	}
	writeJSON(w, ctx, http.StatusAccepted, IndexResponse{
		Message: message,
		Status:  "accepted",
	})
}

// Stats handles GET /api/index/stats.
func (h *IndexHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.notebookService.Stats(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "External service error", "Failed to compute indexing stats")
		return
	}
	writeJSON(w, ctx, http.StatusOK, stats)
}

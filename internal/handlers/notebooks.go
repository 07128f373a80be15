package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/service"
)

// NotebooksHandler handles notebook management requests.
type NotebooksHandler struct {
	notebookService service.NotebookService
}

// NewNotebooksHandler creates a new NotebooksHandler.
func NewNotebooksHandler(notebookService service.NotebookService) *NotebooksHandler {
	return &NotebooksHandler{notebookService: notebookService}
}

// CreateNotebookRequest is the body of POST /api/v1/notebooks.
//
// swagger:model CreateNotebookRequest
type CreateNotebookRequest struct {
	Name string `json:"name"`
}

// NotebookListResponse lists notebooks.
//
// swagger:model NotebookListResponse
type NotebookListResponse struct {
	Notebooks []service.Notebook `json:"notebooks"`
}

// SourcesResponse lists the documents of a notebook.
//
// swagger:model SourcesResponse
type SourcesResponse struct {
	Notebook string   `json:"notebook"`
	Sources  []string `json:"sources"`
}

// List handles GET /api/v1/notebooks.
func (h *NotebooksHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notebooks, err := h.notebookService.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "External service error", "Failed to list notebooks")
		return
	}
	writeJSON(w, ctx, http.StatusOK, NotebookListResponse{Notebooks: notebooks})
}

// Create handles POST /api/v1/notebooks.
//
// swagger:route POST /api/v1/notebooks createNotebook
//
// # Create a notebook
//
// responses:
//
//	'201': Notebook
//	'400': ErrorResponse
//	'409': ErrorResponse
func (h *NotebooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateNotebookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	nb, err := h.notebookService.Create(ctx, req.Name)
	if err != nil {
		handleServiceError(w, ctx, err, "External service error", "Failed to create notebook")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, nb)
}

// Delete handles DELETE /api/v1/notebooks/{name}.
func (h *NotebooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.notebookService.Delete(ctx, chi.URLParam(r, "name")); err != nil {
		handleServiceError(w, ctx, err, "External service error", "Failed to delete notebook")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Sources handles GET /api/v1/notebooks/{name}/sources.
func (h *NotebooksHandler) Sources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	sources, err := h.notebookService.Sources(ctx, name)
	if err != nil {
		handleServiceError(w, ctx, err, "External service error", "Failed to list sources")
		return
	}
	if sources == nil {
		sources = []string{}
	}
	writeJSON(w, ctx, http.StatusOK, SourcesResponse{Notebook: name, Sources: sources})
}

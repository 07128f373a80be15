package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/indexer"
	"notebook-ai/internal/service"
)

const (
	// MaxUploadBytes caps the whole multipart request body.
	MaxUploadBytes = 256 << 20
	// maxUploadMemory is the part of a multipart upload kept in memory; the rest spills to temp files.
	maxUploadMemory = 32 << 20
	uploadField     = "files"
)

// DocumentsHandler handles PDF uploads.
type DocumentsHandler struct {
	notebookService service.NotebookService
	maxBytes        int64
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(notebookService service.NotebookService) *DocumentsHandler {
	return &DocumentsHandler{notebookService: notebookService, maxBytes: MaxUploadBytes}
}

// ServeHTTP handles POST /api/v1/notebooks/{name}/documents.
//
// swagger:route POST /api/v1/notebooks/{name}/documents uploadDocuments
//
// # Upload PDFs to a notebook
//
// Stores the uploaded PDFs and indexes them. Files that are not readable PDFs are
// reported as skipped.
//
// ---
// consumes:
// - multipart/form-data
// responses:
//
//	'200': IndexReport
//	'400': ErrorResponse
//	'413': ErrorResponse
//	'502': ErrorResponse
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.WarnContext(ctx, "upload too large", "limit_bytes", tooLarge.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File[uploadField]
	files := make([]indexer.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			logger.WarnContext(ctx, "failed to open uploaded file", "filename", fh.Filename, "error", err)
			continue
		}
		defer func() {
			_ = f.Close()
		}()
		files = append(files, indexer.UploadedFile{Filename: fh.Filename, Content: f})
	}

	report, err := h.notebookService.Upload(ctx, chi.URLParam(r, "name"), files)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field == uploadField {
			writeError(w, http.StatusBadRequest, "No files uploaded")
			return
		}
		handleServiceError(w, ctx, err, "Failed to index documents", "Failed to upload documents")
		return
	}
	writeJSON(w, ctx, http.StatusOK, report)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/service"
)

const (
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

// ToolsHandler serves the summary, study guide and speech tools.
type ToolsHandler struct {
	toolsService service.ToolsService
	markdown     goldmark.Markdown
}

// NewToolsHandler creates a new ToolsHandler.
func NewToolsHandler(toolsService service.ToolsService) *ToolsHandler {
	return &ToolsHandler{
		toolsService: toolsService,
		markdown:     newMarkdown(),
	}
}

// ToolRequest is the optional body of the tool endpoints.
//
// swagger:model ToolRequest
type ToolRequest struct {
	// Restrict the tool to one document
	Source string `json:"source,omitempty"`
}

// DocumentResponse is a generated document.
//
// swagger:model DocumentResponse
type DocumentResponse struct {
	Notebook string `json:"notebook"`
	Source   string `json:"source,omitempty"`
	// "markdown" or "html"
	Format  string `json:"format"`
	Content string `json:"content"`
}

// SpeechRequest is the body of POST /api/v1/speech.
//
// swagger:model SpeechRequest
type SpeechRequest struct {
	Text string `json:"text"`
}

type generateFunc func(ctx context.Context, req service.ToolRequest) (string, error)

// Summary handles POST /api/v1/notebooks/{name}/summary.
func (h *ToolsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, h.toolsService.Summarize, "Failed to generate summary")
}

// StudyGuide handles POST /api/v1/notebooks/{name}/study-guide.
func (h *ToolsHandler) StudyGuide(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, h.toolsService.StudyGuide, "Failed to generate study guide")
}

func (h *ToolsHandler) serveDocument(w http.ResponseWriter, r *http.Request, generate generateFunc, failMsg string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	content, err := generate(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, failMsg, failMsg)
		return
	}

	resp := DocumentResponse{
		Notebook: req.Notebook,
		Source:   req.Source,
		Format:   formatMarkdown,
		Content:  content,
	}
	if r.URL.Query().Get("format") == formatHTML {
		rendered, err := renderMarkdown(h.markdown, content)
		if err != nil {
			logger.ErrorContext(ctx, "failed to render document", "error", err)
			writeError(w, http.StatusInternalServerError, failMsg)
			return
		}
		resp.Format = formatHTML
		resp.Content = rendered
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// SummarySpeech handles POST /api/v1/notebooks/{name}/summary/speech.
func (h *ToolsHandler) SummarySpeech(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	audio, err := h.toolsService.SummarySpeech(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to synthesize speech", "Failed to synthesize speech")
		return
	}
	writeAudio(w, ctx, audio)
}

// Speech handles POST /api/v1/speech.
func (h *ToolsHandler) Speech(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	audio, err := h.toolsService.Speech(ctx, req.Text)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to synthesize speech", "Failed to synthesize speech")
		return
	}
	writeAudio(w, ctx, audio)
}

// decodeToolRequest reads the notebook from the path and the optional JSON body.
func decodeToolRequest(w http.ResponseWriter, r *http.Request) (service.ToolRequest, bool) {
	ctx := r.Context()

	var body ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return service.ToolRequest{}, false
	}
	return service.ToolRequest{
		Notebook: chi.URLParam(r, "name"),
		Source:   body.Source,
	}, true
}

func writeAudio(w http.ResponseWriter, ctx context.Context, audio service.Audio) {
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.WAV)))
	if audio.Path != "" {
		w.Header().Set("Content-Disposition", `inline; filename="`+filepath.Base(audio.Path)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio.WAV); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to write audio", "error", err)
	}
}

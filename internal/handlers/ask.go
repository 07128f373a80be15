package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/rag"
	"notebook-ai/internal/service"
)

// GenerationFailedMessage is shown when the model could not produce an answer.
const GenerationFailedMessage = "There was a problem generating the answer."

// AskHandler handles HTTP requests for RAG queries.
type AskHandler struct {
	chatService service.ChatService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(chatService service.ChatService) *AskHandler {
	return &AskHandler{chatService: chatService}
}

// AskRequest represents the HTTP request payload for RAG queries.
//
// swagger:model AskRequest
type AskRequest struct {
	// Question to answer from the notebook's documents
	Question string `json:"question"`
	// Conversation to continue; omitted or unknown starts a new one
	SessionID string `json:"session_id,omitempty"`
	// Restrict retrieval to one document
	Source string `json:"source,omitempty"`
	// Sampling temperature (0-2)
	Temperature *float32 `json:"temperature,omitempty"`
	// Maximum output tokens
	MaxTokens int `json:"max_tokens,omitempty"`
}

// AskResponse represents the HTTP response payload for RAG queries.
//
// swagger:model AskResponse
type AskResponse struct {
	// The generated answer
	Answer string `json:"answer"`

	// Passages the answer was generated from
	Sources []SourceResponse `json:"sources"`

	// Conversation the question was added to
	SessionID string `json:"session_id"`

	// Debug contains retrieval details when requested with ?debug=true.
	Debug *rag.DebugInfo `json:"debug,omitempty"`
}

// SourceResponse is a cited passage.
//
// swagger:model SourceResponse
type SourceResponse struct {
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

// ServeHTTP handles HTTP requests for RAG queries.
//
// swagger:route POST /api/v1/notebooks/{name}/ask askQuestion
//
// # Ask a question about a notebook
//
// Answers strictly from the notebook's indexed PDFs and returns the cited passages.
//
// responses:
//
//	'200': AskResponse
//	'400': ErrorResponse
//	'404': ErrorResponse
//	'502': ErrorResponse
//	'500': ErrorResponse
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	debug := false
	if debugParam := r.URL.Query().Get("debug"); debugParam != "" {
		debug = strings.ToLower(debugParam) == "true" || debugParam == "1"
	}

	resp, err := h.chatService.Ask(ctx, service.AskRequest{
		Notebook:    chi.URLParam(r, "name"),
		SessionID:   req.SessionID,
		Question:    req.Question,
		Source:      req.Source,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Debug:       debug,
	})
	if err != nil {
		handleServiceError(w, ctx, err, GenerationFailedMessage, "Failed to process question")
		return
	}

	sources := make([]SourceResponse, len(resp.Sources))
	for i, s := range resp.Sources {
		sources[i] = SourceResponse{Source: s.Source, Snippet: s.Snippet}
	}

	writeJSON(w, ctx, http.StatusOK, AskResponse{
		Answer:    resp.Answer,
		Sources:   sources,
		SessionID: resp.SessionID,
		Debug:     resp.Debug,
	})
}

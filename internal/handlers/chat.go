package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"notebook-ai/internal/service"
)

// ChatHandler exposes the conversation memory of chat sessions.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// HistoryResponse lists the messages of a session.
type HistoryResponse struct {
	SessionID string                `json:"session_id"`
	Messages  []service.ChatMessage `json:"messages"`
}

// History handles GET /api/v1/sessions/{id}/messages.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	messages, err := h.chatService.History(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "External service error", "Failed to load chat history")
		return
	}
	writeJSON(w, ctx, http.StatusOK, HistoryResponse{SessionID: id, Messages: messages})
}

// Reset handles DELETE /api/v1/sessions/{id}.
func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.chatService.Reset(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "External service error", "Failed to reset chat")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

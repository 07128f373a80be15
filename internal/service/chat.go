package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks notebook-ai/internal/service ChatService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/rag"
	"notebook-ai/internal/storage"
)

// AskRequest represents a chat request in the domain layer.
type AskRequest struct {
	Notebook    string   `json:"notebook" validate:"required"`
	SessionID   string   `json:"session_id"`
	Question    string   `json:"question" validate:"required,max=4000"`
	Source      string   `json:"source"`
	Temperature *float32 `json:"temperature" validate:"omitnil,gte=0,lte=2"`
	MaxTokens   int      `json:"max_tokens" validate:"gte=0,lte=8192"`
	Debug       bool     `json:"debug"`
}

// ChatMessage is one stored turn of a conversation.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatService answers questions about a notebook and manages conversations.
type ChatService interface {
	// Ask answers a question from the notebook's documents.
	Ask(ctx context.Context, req AskRequest) (rag.AskResponse, error)
	// History returns the messages of a session, oldest first.
	History(ctx context.Context, sessionID string) ([]ChatMessage, error)
	// Reset deletes a session and its memory.
	Reset(ctx context.Context, sessionID string) error
}

// chatService implements ChatService.
type chatService struct {
	engine   rag.Engine
	sessions storage.SessionStore
}

// NewChatService creates a new ChatService.
func NewChatService(engine rag.Engine, sessions storage.SessionStore) ChatService {
	return &chatService{
		engine:   engine,
		sessions: sessions,
	}
}

// Ask validates the request and runs it through the RAG engine.
func (s *chatService) Ask(ctx context.Context, req AskRequest) (rag.AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	req.Question = strings.TrimSpace(req.Question)
	if err := validateStruct(req); err != nil {
		logger.WarnContext(ctx, "invalid ask request", "error", err)
		return rag.AskResponse{}, err
	}

	resp, err := s.engine.Ask(ctx, rag.AskRequest{
		Notebook:    req.Notebook,
		SessionID:   req.SessionID,
		Question:    req.Question,
		Source:      req.Source,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Debug:       req.Debug,
	})
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrEmptyQuestion):
			return rag.AskResponse{}, &ValidationError{Field: "question", Message: "cannot be empty"}
		case errors.Is(err, rag.ErrNotebookNotFound), errors.Is(err, rag.ErrEmptyNotebook):
			return rag.AskResponse{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		case errors.Is(err, rag.ErrGeneration):
			logger.ErrorContext(ctx, "failed to generate answer", "error", err)
			return rag.AskResponse{}, fmt.Errorf("%w: %w", ErrExternalService, err)
		default:
			logger.ErrorContext(ctx, "failed to answer question", "error", err)
			return rag.AskResponse{}, WrapError(err, "failed to answer question")
		}
	}

	logger.InfoContext(ctx, "ask request processed successfully",
		"notebook", req.Notebook,
		"question_length", len(req.Question),
		"sources", len(resp.Sources),
	)
	return resp, nil
}

// History returns the full conversation of a session.
func (s *chatService) History(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
		}
		return nil, WrapError(err, "failed to get session")
	}

	records, err := s.sessions.Messages(ctx, sessionID)
	if err != nil {
		return nil, WrapError(err, "failed to get messages")
	}

	messages := make([]ChatMessage, 0, len(records))
	for _, m := range records {
		messages = append(messages, ChatMessage{Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return messages, nil
}

// Reset deletes the session so the next question starts a new conversation.
func (s *chatService) Reset(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
		}
		return WrapError(err, "failed to delete session")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "chat session reset", "session_id", sessionID)
	return nil
}

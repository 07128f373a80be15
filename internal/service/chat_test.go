package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/rag"
	rag_mocks "notebook-ai/internal/rag/mocks"
	"notebook-ai/internal/service"
	"notebook-ai/internal/storage"
	storage_mocks "notebook-ai/internal/storage/mocks"
)

func init() {
	// Set default logger to discard output for cleaner test output
	// This suppresses logs from slog.Default() used in the service layer
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// testContext returns a context for testing.
// The default logger is already set to discard in init().
func testContext() context.Context {
	return context.Background()
}

func TestNewChatService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewChatService(rag_mocks.NewMockEngine(ctrl), storage_mocks.NewMockSessionStore(ctrl))
	if svc == nil {
		t.Fatal("NewChatService() returned nil")
	}
}

func TestChatService_Ask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := rag_mocks.NewMockEngine(ctrl)
	svc := service.NewChatService(mockEngine, storage_mocks.NewMockSessionStore(ctrl))

	temp := float32(0.7)

	tests := []struct {
		name         string
		req          service.AskRequest
		mockSetup    func()
		wantErr      bool
		wantAnswer   string
		checkErrType func(error) bool
	}{
		{
			name: "successful ask",
			req: service.AskRequest{
				Notebook:    "history",
				SessionID:   "s1",
				Question:    "  When was Rome founded?  ",
				Source:      "rome.pdf",
				Temperature: &temp,
				MaxTokens:   512,
			},
			mockSetup: func() {
				mockEngine.EXPECT().
					Ask(gomock.Any(), rag.AskRequest{
						Notebook:    "history",
						SessionID:   "s1",
						Question:    "When was Rome founded?",
						Source:      "rome.pdf",
						Temperature: &temp,
						MaxTokens:   512,
					}).
					Return(rag.AskResponse{Answer: "753 BC", SessionID: "s1"}, nil)
			},
			wantAnswer: "753 BC",
		},
		{
			name: "blank question",
			req:  service.AskRequest{Notebook: "history", Question: "   "},
			mockSetup: func() {
				// No mock call expected
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				var validationErr *service.ValidationError
				return errors.As(err, &validationErr) && validationErr.Field == "question"
			},
		},
		{
			name: "missing notebook",
			req:  service.AskRequest{Question: "Why?"},
			mockSetup: func() {
				// No mock call expected
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return errors.Is(err, service.ErrInvalidInput)
			},
		},
		{
			name: "unknown notebook",
			req:  service.AskRequest{Notebook: "missing", Question: "Why?"},
			mockSetup: func() {
				mockEngine.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(rag.AskResponse{}, rag.ErrNotebookNotFound)
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return errors.Is(err, service.ErrNotFound)
			},
		},
		{
			name: "empty notebook",
			req:  service.AskRequest{Notebook: "empty", Question: "Why?"},
			mockSetup: func() {
				mockEngine.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(rag.AskResponse{}, rag.ErrEmptyNotebook)
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return errors.Is(err, service.ErrNotFound)
			},
		},
		{
			name: "generation failure",
			req:  service.AskRequest{Notebook: "history", Question: "Why?"},
			mockSetup: func() {
				mockEngine.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(rag.AskResponse{}, errors.Join(rag.ErrGeneration, errors.New("503")))
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return errors.Is(err, service.ErrExternalService) && errors.Is(err, rag.ErrGeneration)
			},
		},
		{
			name: "unexpected failure",
			req:  service.AskRequest{Notebook: "history", Question: "Why?"},
			mockSetup: func() {
				mockEngine.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(rag.AskResponse{}, errors.New("disk full"))
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return !errors.Is(err, service.ErrExternalService) && !errors.Is(err, service.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			resp, err := svc.Ask(testContext(), tt.req)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Ask() expected error, got nil")
					return
				}
				if tt.checkErrType != nil && !tt.checkErrType(err) {
					t.Errorf("Ask() error type mismatch: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Ask() unexpected error: %v", err)
				return
			}
			if resp.Answer != tt.wantAnswer {
				t.Errorf("Ask() answer = %v, want %v", resp.Answer, tt.wantAnswer)
			}
		})
	}
}

func TestChatService_Ask_WithLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := rag_mocks.NewMockEngine(ctrl)
	svc := service.NewChatService(mockEngine, storage_mocks.NewMockSessionStore(ctrl))

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := contextutil.WithLogger(context.Background(), logger)

	mockEngine.EXPECT().Ask(ctx, gomock.Any()).Return(rag.AskResponse{Answer: "response"}, nil)

	resp, err := svc.Ask(ctx, service.AskRequest{Notebook: "history", Question: "test"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Answer != "response" {
		t.Errorf("Ask() answer = %v, want response", resp.Answer)
	}
}

func TestChatService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := storage_mocks.NewMockSessionStore(ctrl)
	svc := service.NewChatService(rag_mocks.NewMockEngine(ctrl), mockSessions)

	mockSessions.EXPECT().Get(gomock.Any(), "s1").Return(&storage.SessionRecord{ID: "s1"}, nil)
	mockSessions.EXPECT().Messages(gomock.Any(), "s1").Return([]storage.MessageRecord{
		{Role: storage.RoleUser, Content: "Hi"},
		{Role: storage.RoleAssistant, Content: "Hello"},
	}, nil)

	messages, err := svc.History(testContext(), "s1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(messages) != 2 || messages[0].Content != "Hi" || messages[1].Role != storage.RoleAssistant {
		t.Errorf("History() = %+v", messages)
	}
}

func TestChatService_History_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := storage_mocks.NewMockSessionStore(ctrl)
	svc := service.NewChatService(rag_mocks.NewMockEngine(ctrl), mockSessions)

	mockSessions.EXPECT().Get(gomock.Any(), "gone").Return(nil, storage.ErrNotFound)

	if _, err := svc.History(testContext(), "gone"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("History() error = %v, want ErrNotFound", err)
	}
}

func TestChatService_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := storage_mocks.NewMockSessionStore(ctrl)
	svc := service.NewChatService(rag_mocks.NewMockEngine(ctrl), mockSessions)

	gomock.InOrder(
		mockSessions.EXPECT().Delete(gomock.Any(), "s1").Return(nil),
		mockSessions.EXPECT().Delete(gomock.Any(), "s1").Return(storage.ErrNotFound),
		mockSessions.EXPECT().Delete(gomock.Any(), "s2").Return(errors.New("database is locked")),
	)

	if err := svc.Reset(testContext(), "s1"); err != nil {
		t.Errorf("Reset() error = %v", err)
	}
	if err := svc.Reset(testContext(), "s1"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Reset() second error = %v, want ErrNotFound", err)
	}
	if err := svc.Reset(testContext(), "s2"); err == nil || errors.Is(err, service.ErrNotFound) {
		t.Errorf("Reset() error = %v, want storage error", err)
	}
}

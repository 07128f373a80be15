package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"notebook-ai/internal/indexer"
	"notebook-ai/internal/service/mocks"
)

func TestIndexHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantForce   bool
		reindexErr  error
		wantMessage string
	}{
		{
			name:        "incremental",
			wantMessage: "Indexing started. Check server logs for progress.",
		},
		{
			name:        "force",
			query:       "?force=true",
			wantForce:   true,
			wantMessage: "Force re-indexing started (all existing data cleared). Check server logs for progress.",
		},
		{
			name:        "background failure still accepted",
			reindexErr:  errors.New("embedding service down"),
			wantMessage: "Indexing started. Check server logs for progress.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockNotebookService := mocks.NewMockNotebookService(ctrl)
			handler := NewIndexHandler(mockNotebookService)

			done := make(chan struct{})
			mockNotebookService.EXPECT().
				Reindex(gomock.Any(), tt.wantForce).
				DoAndReturn(func(_ context.Context, _ bool) error {
					close(done)
					return tt.reindexErr
				})

			req := httptest.NewRequest(http.MethodPost, "/api/index"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != http.StatusAccepted {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, http.StatusAccepted)
			}
			var resp IndexResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != "accepted" {
				t.Errorf("Status = %q, want accepted", resp.Status)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", resp.Message, tt.wantMessage)
			}

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("background re-index was not started")
			}
		})
	}
}

func TestIndexHandler_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNotebookService := mocks.NewMockNotebookService(ctrl)
	handler := NewIndexHandler(mockNotebookService)
	mockNotebookService.EXPECT().Stats(gomock.Any()).Return(&indexer.IndexingCoverageStats{
		DocsProcessed:  3,
		ChunksEmbedded: 12,
		ChunkerVersion: indexer.ChunkerVersion,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/index/stats", nil)
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Stats() status = %v, want %v", w.Code, http.StatusOK)
	}
	var stats indexer.IndexingCoverageStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.DocsProcessed != 3 || stats.ChunksEmbedded != 12 {
		t.Errorf("stats = %+v", stats)
	}
}

package main_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	main "notebook-ai/cmd/notebookctl"
	"notebook-ai/internal/rag"
	"notebook-ai/internal/service"
	"notebook-ai/internal/service/mocks"
)

func newChatDeps(t *testing.T, stdin string) (*main.Dependencies, *mocks.MockChatService, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	chat := mocks.NewMockChatService(ctrl)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
		Chat:   chat,
	}, chat, stdout, stderr
}

func TestAskCmd_Run_SingleQuestion(t *testing.T) {
	t.Parallel()

	deps, chat, stdout, stderr := newChatDeps(t, "")
	chat.EXPECT().
		Ask(gomock.Any(), service.AskRequest{Notebook: "history", Question: "Who founded Rome?", Source: "rome.pdf"}).
		Return(rag.AskResponse{
			Answer:    "Romulus, according to legend.",
			Sources:   []rag.SourceSnippet{{Source: "rome.pdf", Snippet: "Romulus and Remus..."}},
			SessionID: "session-1",
		}, nil)

	err := (&main.AskCmd{Name: "history", Question: "Who founded Rome?", Source: "rome.pdf"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Romulus, according to legend.")
	assert.Contains(t, stdout.String(), "[rome.pdf] Romulus and Remus...")
	assert.Contains(t, stderr.String(), "session: session-1")
}

func TestAskCmd_Run_Debug(t *testing.T) {
	t.Parallel()

	deps, chat, _, stderr := newChatDeps(t, "")
	chat.EXPECT().
		Ask(gomock.Any(), gomock.Any()).
		Return(rag.AskResponse{
			Answer:    "answer",
			SessionID: "session-1",
			Debug: &rag.DebugInfo{
				StandaloneQuestion: "Who founded Rome?",
				RetrievedChunks: []rag.RetrievedChunk{
					{Source: "rome.pdf", ChunkIndex: 2, ScoreFinal: 0.91, Rank: 1, Used: true},
				},
			},
		}, nil)

	err := (&main.AskCmd{Name: "history", Question: "Who founded Rome?", Session: "session-1", Debug: true}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "standalone question: Who founded Rome?")
	assert.Contains(t, stderr.String(), "rome.pdf")
	assert.NotContains(t, stderr.String(), "session: ")
}

func TestAskCmd_Run_Error(t *testing.T) {
	t.Parallel()

	deps, chat, _, stderr := newChatDeps(t, "")
	chat.EXPECT().
		Ask(gomock.Any(), gomock.Any()).
		Return(rag.AskResponse{}, fmt.Errorf("%w: notebook missing", service.ErrNotFound))

	err := (&main.AskCmd{Name: "missing", Question: "q"}).Run(deps)

	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Contains(t, stderr.String(), "not found")
}

func TestAskCmd_Run_Interactive(t *testing.T) {
	t.Parallel()

	deps, chat, stdout, _ := newChatDeps(t, "Who founded Rome?\n\nWhen?\n/reset\nAnd Athens?\n/exit\nignored\n")

	gomock.InOrder(
		chat.EXPECT().
			Ask(gomock.Any(), service.AskRequest{Notebook: "history", Question: "Who founded Rome?"}).
			Return(rag.AskResponse{Answer: "Romulus.", SessionID: "s1"}, nil),
		chat.EXPECT().
			Ask(gomock.Any(), service.AskRequest{Notebook: "history", SessionID: "s1", Question: "When?"}).
			Return(rag.AskResponse{Answer: "753 BC.", SessionID: "s1"}, nil),
		chat.EXPECT().Reset(gomock.Any(), "s1").Return(nil),
		chat.EXPECT().
			Ask(gomock.Any(), service.AskRequest{Notebook: "history", Question: "And Athens?"}).
			Return(rag.AskResponse{Answer: "Theseus.", SessionID: "s2"}, nil),
	)

	err := (&main.AskCmd{Name: "history"}).Run(deps)

	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, "Romulus.")
	assert.Contains(t, out, "753 BC.")
	assert.Contains(t, out, "Conversation cleared.")
	assert.Contains(t, out, "Theseus.")
}

func TestAskCmd_Run_InteractiveEOF(t *testing.T) {
	t.Parallel()

	deps, chat, stdout, _ := newChatDeps(t, "Who founded Rome?")
	chat.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(rag.AskResponse{}, fmt.Errorf("%w: quota", service.ErrExternalService))

	err := (&main.AskCmd{Name: "history"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `Chatting with "history"`)
}

package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks notebook-ai/internal/rag Engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/llm"
	"notebook-ai/internal/storage"
	"notebook-ai/internal/vectorstore"
)

const (
	// DefaultK is the number of passages given to the model.
	DefaultK = 4
	// DefaultMemoryWindow is the number of past exchanges kept in memory.
	DefaultMemoryWindow = 5
	// DefaultTemperature is the answer sampling temperature.
	DefaultTemperature = float32(0.2)
	// DefaultMaxTokens caps the answer length.
	DefaultMaxTokens = 2048

	snippetRunes   = 200
	unknownSource  = "N/D"
	overfetchRatio = 2
)

// Options tunes retrieval and generation.
type Options struct {
	K            int
	MemoryWindow int
	Temperature  float32
	MaxTokens    int
}

// DefaultOptions returns the stock retrieval and generation settings.
func DefaultOptions() Options {
	return Options{
		K:            DefaultK,
		MemoryWindow: DefaultMemoryWindow,
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultMaxTokens,
	}
}

// Engine provides RAG (Retrieval-Augmented Generation) functionality.
type Engine interface {
	// Ask answers a question using the notebook's documents and the session's recent history.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	notebookRepo storage.NotebookStore
	documentRepo storage.DocumentStore
	chunkRepo    storage.ChunkStore
	sessionRepo  storage.SessionStore
	embedder     llm.Embedder
	chatModel    llm.ChatModel
	vectorStore  vectorstore.VectorStore
	collection   string
	opts         Options
}

// NewEngine creates a new RAG engine. A non-positive K or MaxTokens and a negative
// MemoryWindow fall back to the defaults. A MemoryWindow of 0 disables chat memory and
// Temperature is used as given.
func NewEngine(
	notebookRepo storage.NotebookStore,
	documentRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	sessionRepo storage.SessionStore,
	embedder llm.Embedder,
	chatModel llm.ChatModel,
	vectorStore vectorstore.VectorStore,
	collection string,
	opts Options,
) Engine {
	if opts.K <= 0 {
		opts.K = DefaultK
	}
	if opts.MemoryWindow < 0 {
		opts.MemoryWindow = DefaultMemoryWindow
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return &ragEngine{
		notebookRepo: notebookRepo,
		documentRepo: documentRepo,
		chunkRepo:    chunkRepo,
		sessionRepo:  sessionRepo,
		embedder:     embedder,
		chatModel:    chatModel,
		vectorStore:  vectorStore,
		collection:   collection,
		opts:         opts,
	}
}

// Ask answers a question using RAG.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResponse{}, ErrEmptyQuestion
	}

	logger.InfoContext(ctx, "rag query started",
		"notebook", req.Notebook,
		"source", req.Source,
		"session_id", req.SessionID,
	)

	nb, err := e.notebookRepo.GetByName(ctx, req.Notebook)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return AskResponse{}, fmt.Errorf("%w: %s", ErrNotebookNotFound, req.Notebook)
		}
		return AskResponse{}, fmt.Errorf("failed to get notebook: %w", err)
	}

	sources, err := e.documentRepo.ListSources(ctx, nb.ID)
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to list sources: %w", err)
	}
	if len(sources) == 0 {
		return AskResponse{}, fmt.Errorf("%w: %s", ErrEmptyNotebook, req.Notebook)
	}

	session, err := e.resolveSession(ctx, nb, req)
	if err != nil {
		return AskResponse{}, err
	}

	var history []storage.MessageRecord
	if e.opts.MemoryWindow > 0 {
		history, err = e.sessionRepo.RecentMessages(ctx, session.ID, 2*e.opts.MemoryWindow)
		if err != nil {
			return AskResponse{}, fmt.Errorf("failed to load chat history: %w", err)
		}
	}

	params := e.chatParams(req)

	standalone := question
	if len(history) > 0 {
		standalone, err = e.condenseQuestion(ctx, history, question, params)
		if err != nil {
			logger.ErrorContext(ctx, "failed to condense question", "error", err)
			return AskResponse{}, fmt.Errorf("%w: %w", ErrGeneration, err)
		}
		logger.DebugContext(ctx, "condensed question", "question", question, "standalone", standalone)
	}

	candidates, err := e.retrieve(ctx, nb, req.Source, standalone)
	if err != nil {
		return AskResponse{}, err
	}
	used := candidates[:min(e.opts.K, len(candidates))]

	resp := AskResponse{
		Sources:   make([]SourceSnippet, 0, len(used)),
		SessionID: session.ID,
	}
	if req.Debug {
		resp.Debug = buildDebugInfo(standalone, len(history), candidates, len(used))
	}

	if len(used) == 0 {
		logger.InfoContext(ctx, "no search results found")
		resp.Answer = NoContextAnswer
		e.remember(ctx, session.ID, question, resp.Answer)
		return resp, nil
	}

	passages := make([]string, len(used))
	for i, c := range used {
		passages[i] = c.text
	}
	messages := buildAnswerMessages(standalone, passages)

	logger.InfoContext(ctx, "sending request to llm",
		"chunks_included", len(used),
		"history_messages", len(history),
		"system_prompt_length", len(messages[0].Content),
	)

	answer, err := e.chatModel.Generate(ctx, messages, params)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get llm response", "error", err)
		return AskResponse{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	resp.Answer = strings.TrimSpace(answer)

	for _, c := range used {
		resp.Sources = append(resp.Sources, SourceSnippet{
			Source:  sourceName(c.result.Meta),
			Snippet: snippet(c.text),
		})
	}

	e.remember(ctx, session.ID, question, resp.Answer)

	logger.InfoContext(ctx, "rag query completed",
		"session_id", session.ID,
		"chunks_used", len(used),
		"answer_length", len(resp.Answer),
	)
	return resp, nil
}

// resolveSession continues the requested session when it belongs to the same notebook and
// source filter; any other case starts a fresh conversation.
func (e *ragEngine) resolveSession(ctx context.Context, nb *storage.NotebookRecord, req AskRequest) (*storage.SessionRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.SessionID != "" {
		session, err := e.sessionRepo.Get(ctx, req.SessionID)
		switch {
		case err == nil && session.NotebookID == nb.ID && session.Source == req.Source:
			return session, nil
		case err == nil:
			logger.InfoContext(ctx, "retrieval scope changed, starting new session", "previous_session_id", req.SessionID)
		case errors.Is(err, storage.ErrNotFound):
			logger.InfoContext(ctx, "unknown session, starting new session", "previous_session_id", req.SessionID)
		default:
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
	}

	session, err := e.sessionRepo.Create(ctx, nb.ID, req.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (e *ragEngine) chatParams(req AskRequest) llm.ChatParams {
	params := llm.ChatParams{
		Temperature: e.opts.Temperature,
		MaxTokens:   e.opts.MaxTokens,
	}
	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = req.MaxTokens
	}
	return params
}

func (e *ragEngine) condenseQuestion(ctx context.Context, history []storage.MessageRecord, question string, params llm.ChatParams) (string, error) {
	standalone, err := e.chatModel.Generate(ctx, buildCondenseMessages(history, question), params)
	if err != nil {
		return "", err
	}
	standalone = strings.TrimSpace(standalone)
	if standalone == "" {
		return question, nil
	}
	return standalone, nil
}

// retrieve over-fetches candidates from the vector store, loads their text and reranks them.
func (e *ragEngine) retrieve(ctx context.Context, nb *storage.NotebookRecord, source, query string) ([]rerankCandidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	queryVec, err := e.embedQuery(ctx, query)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed question", "error", err)
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	filters := map[string]any{vectorstore.MetaNotebookID: nb.ID}
	if source != "" {
		filters[vectorstore.MetaSource] = source
	}

	k := e.opts.K * overfetchRatio
	results, err := e.vectorStore.Search(ctx, e.collection, queryVec, k, filters)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search vector store", "error", err)
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}
	logger.InfoContext(ctx, "vector search completed", "results_count", len(results), "k_requested", k)

	candidates := make([]rerankCandidate, 0, len(results))
	for _, result := range results {
		chunk, err := e.chunkRepo.GetByID(ctx, result.PointID)
		if err != nil {
			logger.WarnContext(ctx, "failed to fetch chunk text", "chunk_id", result.PointID, "error", err)
			continue
		}
		candidates = append(candidates, rerankCandidate{result: result, text: chunk.Text})
	}
	return rerank(query, candidates), nil
}

func (e *ragEngine) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if qe, ok := e.embedder.(llm.QueryEmbedder); ok {
		return qe.EmbedQuery(ctx, query)
	}
	embeddings, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for question")
	}
	return embeddings[0], nil
}

// remember appends the exchange to the session memory. Failures only cost context for
// later questions, so the answer is still returned.
func (e *ragEngine) remember(ctx context.Context, sessionID, question, answer string) {
	err := e.sessionRepo.AppendMessages(ctx, sessionID,
		storage.MessageRecord{Role: storage.RoleUser, Content: question},
		storage.MessageRecord{Role: storage.RoleAssistant, Content: answer},
	)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to save chat history", "session_id", sessionID, "error", err)
	}
}

func buildDebugInfo(standalone string, historyMessages int, candidates []rerankCandidate, used int) *DebugInfo {
	info := &DebugInfo{
		StandaloneQuestion: standalone,
		HistoryMessages:    historyMessages,
		RetrievedChunks:    make([]RetrievedChunk, 0, len(candidates)),
	}
	for i, c := range candidates {
		index, _ := vectorstore.MetaInt(c.result.Meta, vectorstore.MetaChunkIndex)
		info.RetrievedChunks = append(info.RetrievedChunks, RetrievedChunk{
			ChunkID:      c.result.PointID,
			Source:       sourceName(c.result.Meta),
			ChunkIndex:   int(index),
			ScoreVector:  float64(c.result.Score),
			ScoreLexical: float64(c.lexical),
			ScoreFinal:   float64(c.final),
			Text:         c.text,
			Rank:         i + 1,
			Used:         i < used,
		})
	}
	return info
}

func sourceName(meta map[string]any) string {
	if s := vectorstore.MetaString(meta, vectorstore.MetaSource); s != "" {
		return s
	}
	return unknownSource
}

// snippet returns the first snippetRunes runes of the trimmed text followed by "...".
func snippet(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > snippetRunes {
		runes = runes[:snippetRunes]
	}
	return string(runes) + "..."
}

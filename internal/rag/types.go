package rag

import "errors"

var (
	// ErrEmptyQuestion is returned when the question is blank.
	ErrEmptyQuestion = errors.New("empty question")
	// ErrNotebookNotFound is returned when the notebook does not exist.
	ErrNotebookNotFound = errors.New("notebook not found")
	// ErrEmptyNotebook is returned when the notebook has no indexed documents.
	ErrEmptyNotebook = errors.New("notebook has no indexed documents")
	// ErrGeneration is returned when the chat model fails to produce an answer.
	ErrGeneration = errors.New("answer generation failed")
)

// AskRequest represents a RAG query request.
type AskRequest struct {
	// Notebook is the name of the notebook to search.
	Notebook string `json:"notebook"`
	// SessionID continues an existing conversation. Empty starts a new one.
	SessionID string `json:"session_id,omitempty"`
	// Question is the user's question to answer.
	Question string `json:"question"`
	// Source restricts retrieval to one document of the notebook. Empty searches all documents.
	Source string `json:"source,omitempty"`
	// Temperature overrides the default sampling temperature when set.
	Temperature *float32 `json:"temperature,omitempty"`
	// MaxTokens overrides the default output limit when positive.
	MaxTokens int `json:"max_tokens,omitempty"`
	// Debug enables debug mode, returning detailed retrieval information.
	Debug bool `json:"debug,omitempty"`
}

// SourceSnippet is a retrieved passage shown next to the answer.
type SourceSnippet struct {
	// Source is the document filename, "N/D" when unknown.
	Source string `json:"source"`
	// Snippet is the beginning of the passage.
	Snippet string `json:"snippet"`
}

// AskResponse represents the response from a RAG query.
type AskResponse struct {
	// Answer is the generated answer from the LLM.
	Answer string `json:"answer"`
	// Sources are the passages the answer was generated from.
	Sources []SourceSnippet `json:"sources"`
	// SessionID identifies the conversation the question was added to.
	SessionID string `json:"session_id"`
	// Debug contains debug information when debug mode is enabled.
	Debug *DebugInfo `json:"debug,omitempty"`
}

// DebugInfo contains detailed retrieval information for debugging and evaluation.
type DebugInfo struct {
	// StandaloneQuestion is the question used for retrieval after condensing the history.
	StandaloneQuestion string `json:"standalone_question"`
	// HistoryMessages is the number of memory messages used.
	HistoryMessages int `json:"history_messages"`
	// RetrievedChunks contains all reranked candidates with scores and ranks.
	RetrievedChunks []RetrievedChunk `json:"retrieved_chunks"`
}

// RetrievedChunk represents a retrieved chunk with scoring information.
type RetrievedChunk struct {
	// ChunkID is the stable chunk identifier.
	ChunkID string `json:"chunk_id"`
	// Source is the document filename.
	Source string `json:"source"`
	// ChunkIndex is the position of the chunk in its document.
	ChunkIndex int `json:"chunk_index"`
	// ScoreVector is the vector similarity score.
	ScoreVector float64 `json:"score_vector"`
	// ScoreLexical is the lexical overlap score.
	ScoreLexical float64 `json:"score_lexical"`
	// ScoreFinal is the combined final score.
	ScoreFinal float64 `json:"score_final"`
	// Text is the chunk text.
	Text string `json:"text"`
	// Rank is the rank of this chunk after reranking (1-based).
	Rank int `json:"rank"`
	// Used reports whether the chunk was passed to the model.
	Used bool `json:"used"`
}

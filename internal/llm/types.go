package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks notebook-ai/internal/llm ChatModel,Embedder,Speaker

import "context"

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a chat conversation.
// This type is used by the RAG engine and other structured message consumers.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, no limit is applied.
	MaxTokens int

	// Temperature controls the randomness of the output. Always sent, so 0 means greedy.
	Temperature float32
}

// ChatModel produces a single completion for a conversation.
type ChatModel interface {
	Generate(ctx context.Context, messages []Message, params ChatParams) (string, error)
}

// Embedder turns texts into vectors, one per input, all of the configured size.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryEmbedder is implemented by embedders that encode search queries differently
// from the documents they are matched against.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Speaker synthesizes speech and returns a complete WAV file.
type Speaker interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/llm"
)

var (
	_ llm.Embedder      = (*Embedder)(nil)
	_ llm.QueryEmbedder = (*Embedder)(nil)
)

const (
	defaultEmbedBatchSize  = 50
	defaultEmbedRPS        = 1.5
	defaultEmbedRetries    = 5
	defaultEmbedRetryDelay = 6 * time.Second

	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Embedder implements llm.Embedder with the Gemini embedding API.
// Requests are batched, paced by Limiter and retried when the API reports a rate limit.
type Embedder struct {
	models    Models
	model     string
	dimension int

	BatchSize  int
	Limiter    *rate.Limiter
	MaxRetries int
	RetryDelay time.Duration
}

// NewEmbedder creates an Embedder whose vectors must have exactly dimension values.
func NewEmbedder(models Models, model string, dimension int) *Embedder {
	return &Embedder{
		models:     models,
		model:      model,
		dimension:  dimension,
		BatchSize:  defaultEmbedBatchSize,
		Limiter:    rate.NewLimiter(rate.Limit(defaultEmbedRPS), 1),
		MaxRetries: defaultEmbedRetries,
		RetryDelay: defaultEmbedRetryDelay,
	}
}

// EmbedTexts returns one document vector per text, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("empty input array")
	}

	batchSize := e.BatchSize
	if batchSize <= 0 {
		batchSize = defaultEmbedBatchSize
	}

	result := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		vecs, err := e.embedBatchWithRetry(ctx, texts[start:end], taskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", start, end, err)
		}
		result = append(result, vecs...)
	}
	return result, nil
}

// EmbedQuery embeds a search query for retrieval against document vectors.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("empty query")
	}
	vecs, err := e.embedBatchWithRetry(ctx, []string{text}, taskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *Embedder) embedBatchWithRetry(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= e.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.WarnContext(ctx, "embedding rate limited, retrying",
				slog.Int("attempt", attempt),
				slog.Duration("delay", e.RetryDelay),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.RetryDelay):
			}
		}

		if e.Limiter != nil {
			if err := e.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		vecs, err := e.embedBatch(ctx, texts, taskType)
		if err == nil {
			return vecs, nil
		}
		if !isRateLimitError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("rate limit retries exhausted: %w", lastErr)
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	config := &genai.EmbedContentConfig{TaskType: taskType}
	if e.dimension > 0 {
		dim := int32(e.dimension)
		config.OutputDimensionality = &dim
	}

	res, err := e.models.EmbedContent(ctx, e.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if res == nil || len(res.Embeddings) != len(texts) {
		got := 0
		if res != nil {
			got = len(res.Embeddings)
		}
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), got)
	}

	vecs := make([][]float32, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		if emb == nil {
			return nil, fmt.Errorf("embedding %d is missing", i)
		}
		if e.dimension > 0 && len(emb.Values) != e.dimension {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(emb.Values), e.dimension)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}

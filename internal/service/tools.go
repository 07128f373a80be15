package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tools_service.go -package=mocks notebook-ai/internal/service ToolsService

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/llm"
	"notebook-ai/internal/storage"
)

const (
	summaryTemperature    = float32(0.3)
	studyGuideTemperature = float32(0.2)

	summaryPrompt = "You are an expert at summarizing complex documents. " +
		"Write a detailed summary of the text, organizing the main concepts into key points."
	studyGuidePrompt = "You are a study assistant. Analyze the text and create a guide " +
		"(short questions and answers) on the key concepts. Format it in Markdown:\n" +
		"**Question 1:** ...\n**Answer:** ..."

	// NoTextToSummarize is returned instead of a summary when the documents have no text.
	NoTextToSummarize = "No text to summarize."
	// NoTextForStudyGuide is returned instead of a study guide when the documents have no text.
	NoTextForStudyGuide = "No text to build a study guide from."
)

// ToolRequest selects the text a tool works on: the whole notebook or one of its documents.
type ToolRequest struct {
	Notebook string `json:"notebook" validate:"required"`
	Source   string `json:"source"`
}

// MaxSpeechTextLength caps the free text accepted by Speech. Summaries read aloud by
// SummarySpeech are not capped.
const MaxSpeechTextLength = 5000

type speechInput struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type summarySpeechInput struct {
	Text string `json:"text" validate:"required"`
}

// Audio is a synthesized WAV file.
type Audio struct {
	WAV []byte
	// Path is where the file was saved, empty when it was not written to disk.
	Path string
}

// ToolsService provides the auxiliary generation tools.
type ToolsService interface {
	// Summarize produces a key-point Markdown summary.
	Summarize(ctx context.Context, req ToolRequest) (string, error)
	// StudyGuide produces Markdown question/answer pairs.
	StudyGuide(ctx context.Context, req ToolRequest) (string, error)
	// SummarySpeech reads the last summary aloud, generating one if none exists.
	SummarySpeech(ctx context.Context, req ToolRequest) (Audio, error)
	// Speech synthesizes arbitrary text of at most MaxSpeechTextLength characters.
	Speech(ctx context.Context, text string) (Audio, error)
}

type toolsService struct {
	notebooks storage.NotebookStore
	documents storage.DocumentStore
	artifacts storage.ArtifactStore
	chatModel llm.ChatModel
	speaker   llm.Speaker
	audioDir  string
}

// NewToolsService creates a new ToolsService. An empty audioDir disables saving audio files.
func NewToolsService(
	notebooks storage.NotebookStore,
	documents storage.DocumentStore,
	artifacts storage.ArtifactStore,
	chatModel llm.ChatModel,
	speaker llm.Speaker,
	audioDir string,
) ToolsService {
	return &toolsService{
		notebooks: notebooks,
		documents: documents,
		artifacts: artifacts,
		chatModel: chatModel,
		speaker:   speaker,
		audioDir:  audioDir,
	}
}

type tool struct {
	kind        string
	prompt      string
	inputLabel  string
	temperature float32
	emptyText   string
}

var (
	summaryTool = tool{
		kind:        storage.ArtifactSummary,
		prompt:      summaryPrompt,
		inputLabel:  "Text to summarize",
		temperature: summaryTemperature,
		emptyText:   NoTextToSummarize,
	}
	studyGuideTool = tool{
		kind:        storage.ArtifactStudyGuide,
		prompt:      studyGuidePrompt,
		inputLabel:  "Text to build the guide from",
		temperature: studyGuideTemperature,
		emptyText:   NoTextForStudyGuide,
	}
)

func (s *toolsService) Summarize(ctx context.Context, req ToolRequest) (string, error) {
	return s.generate(ctx, req, summaryTool)
}

func (s *toolsService) StudyGuide(ctx context.Context, req ToolRequest) (string, error) {
	return s.generate(ctx, req, studyGuideTool)
}

func (s *toolsService) SummarySpeech(ctx context.Context, req ToolRequest) (Audio, error) {
	if err := validateStruct(req); err != nil {
		return Audio{}, err
	}
	nb, err := s.notebook(ctx, req.Notebook)
	if err != nil {
		return Audio{}, err
	}

	var summary string
	cached, err := s.artifacts.Get(ctx, nb.ID, req.Source, storage.ArtifactSummary)
	switch {
	case err == nil:
		summary = cached.Content
	case errors.Is(err, storage.ErrNotFound):
		summary, err = s.Summarize(ctx, req)
		if err != nil {
			return Audio{}, err
		}
	default:
		return Audio{}, WrapError(err, "failed to load summary")
	}

	input := summarySpeechInput{Text: strings.TrimSpace(summary)}
	if err := validateStruct(input); err != nil {
		return Audio{}, err
	}
	return s.synthesize(ctx, input.Text)
}

func (s *toolsService) Speech(ctx context.Context, text string) (Audio, error) {
	input := speechInput{Text: strings.TrimSpace(text)}
	if err := validateStruct(input); err != nil {
		return Audio{}, err
	}
	return s.synthesize(ctx, input.Text)
}

func (s *toolsService) synthesize(ctx context.Context, text string) (Audio, error) {
	logger := contextutil.LoggerFromContext(ctx)

	wav, err := s.speaker.Synthesize(ctx, text)
	if err != nil {
		logger.ErrorContext(ctx, "failed to synthesize speech", "error", err)
		return Audio{}, fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	audio := Audio{WAV: wav}
	if s.audioDir != "" {
		path, err := s.saveAudio(wav)
		if err != nil {
			logger.WarnContext(ctx, "failed to save audio file", "dir", s.audioDir, "error", err)
		} else {
			audio.Path = path
		}
	}

	logger.InfoContext(ctx, "speech synthesized", "text_length", len(text), "bytes", len(wav), "path", audio.Path)
	return audio, nil
}

func (s *toolsService) generate(ctx context.Context, req ToolRequest, t tool) (string, error) {
	logger := contextutil.LoggerFromContext(ctx).With("tool", t.kind, "notebook", req.Notebook, "source", req.Source)

	if err := validateStruct(req); err != nil {
		return "", err
	}
	nb, err := s.notebook(ctx, req.Notebook)
	if err != nil {
		return "", err
	}

	text, err := s.fullText(ctx, nb, req.Source)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		logger.InfoContext(ctx, "no text available for tool")
		return t.emptyText, nil
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: t.prompt},
		{Role: llm.RoleUser, Content: t.inputLabel + ":\n\n" + text},
	}
	out, err := s.chatModel.Generate(ctx, messages, llm.ChatParams{Temperature: t.temperature})
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate", "error", err)
		return "", fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	out = strings.TrimSpace(out)

	if err := s.artifacts.Put(ctx, &storage.ArtifactRecord{
		NotebookID: nb.ID,
		Source:     req.Source,
		Kind:       t.kind,
		Content:    out,
	}); err != nil {
		logger.WarnContext(ctx, "failed to cache result", "error", err)
	}

	logger.InfoContext(ctx, "tool output generated", "input_length", len(text), "output_length", len(out))
	return out, nil
}

func (s *toolsService) notebook(ctx context.Context, name string) (*storage.NotebookRecord, error) {
	nb, err := s.notebooks.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: notebook %s", ErrNotFound, name)
		}
		return nil, WrapError(err, "failed to get notebook")
	}
	return nb, nil
}

// fullText concatenates the stored text of the notebook's documents, each followed by a blank line.
func (s *toolsService) fullText(ctx context.Context, nb *storage.NotebookRecord, source string) (string, error) {
	var docs []storage.DocumentRecord
	if source != "" {
		doc, err := s.documents.GetByNotebookAndSource(ctx, nb.ID, source)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return "", fmt.Errorf("%w: source %s", ErrNotFound, source)
			}
			return "", WrapError(err, "failed to get document")
		}
		docs = append(docs, *doc)
	} else {
		var err error
		docs, err = s.documents.ListByNotebook(ctx, nb.ID)
		if err != nil {
			return "", WrapError(err, "failed to list documents")
		}
	}

	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

func (s *toolsService) saveAudio(wav []byte) (string, error) {
	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(s.audioDir, "speech-"+uuid.New().String()+".wav")
	if err := os.WriteFile(path, wav, 0644); err != nil {
		return "", err
	}
	return path, nil
}

package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"notebook-ai/internal/llm"
)

var _ llm.ChatModel = (*ChatModel)(nil)

// ChatModel implements llm.ChatModel with Gemini GenerateContent.
type ChatModel struct {
	models Models
	model  string
}

// NewChatModel creates a ChatModel that defaults to model.
func NewChatModel(models Models, model string) *ChatModel {
	return &ChatModel{models: models, model: model}
}

// Generate sends the conversation and returns the model's text.
// System messages become the system instruction; assistant turns are sent with the model role.
func (c *ChatModel) Generate(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("no messages to send")
	}

	var system []*genai.Part
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, &genai.Part{Text: m.Content})
		case llm.RoleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	if len(contents) == 0 {
		return "", errors.New("no user message to send")
	}

	temp := params.Temperature
	config := &genai.GenerateContentConfig{Temperature: &temp}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{Parts: system}
	}
	if params.MaxTokens > 0 {
		config.MaxOutputTokens = int32(params.MaxTokens)
	}

	model := params.Model
	if model == "" {
		model = c.model
	}

	result, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if result == nil {
		return "", errors.New("gemini generate: empty response")
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("gemini generate: response has no text")
	}
	return text, nil
}

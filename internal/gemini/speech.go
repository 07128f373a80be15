package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"notebook-ai/internal/llm"
)

var _ llm.Speaker = (*Speaker)(nil)

// Speaker implements llm.Speaker with a Gemini text-to-speech model.
type Speaker struct {
	models Models
	model  string
	voice  string
}

// NewSpeaker creates a Speaker using the given TTS model and prebuilt voice.
func NewSpeaker(models Models, model, voice string) *Speaker {
	return &Speaker{models: models, model: model, voice: voice}
}

// Synthesize returns text read aloud as a 24 kHz mono WAV file.
func (s *Speaker) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty text")
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voice},
			},
		},
	}
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: text}}}}

	resp, err := s.models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini tts: %w", err)
	}

	pcm := inlineAudio(resp)
	if len(pcm) == 0 {
		return nil, errors.New("gemini tts: response has no audio")
	}
	return EncodeWAV(pcm, ttsSampleRate, ttsChannels)
}

// inlineAudio concatenates the audio parts of the first candidate that has any.
// Long responses arrive split across several parts.
func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var pcm []byte
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil {
				pcm = append(pcm, part.InlineData.Data...)
			}
		}
		if len(pcm) > 0 {
			return pcm
		}
	}
	return nil
}

package gemini

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func pcm16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func TestEncodeWAV(t *testing.T) {
	t.Parallel()

	data, err := EncodeWAV(pcm16(0, 1000, -1000, 32767, -32768), ttsSampleRate, ttsChannels)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))

	dec := wav.NewDecoder(bytes.NewReader(data))
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(ttsSampleRate), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1000, -1000, 32767, -32768}, buf.Data)
}

func TestEncodeWAV_Empty(t *testing.T) {
	t.Parallel()

	_, err := EncodeWAV(nil, ttsSampleRate, ttsChannels)
	require.Error(t, err)
}

func TestSpeaker_Synthesize(t *testing.T) {
	t.Parallel()

	t.Run("wraps inline audio", func(t *testing.T) {
		t.Parallel()

		var gotConfig *genai.GenerateContentConfig
		var gotModel string
		models := &fakeModels{
			GenerateContentFn: func(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				gotModel = model
				gotConfig = config
				return &genai.GenerateContentResponse{
					Candidates: []*genai.Candidate{{
						Content: &genai.Content{Parts: []*genai.Part{{
							InlineData: &genai.Blob{MIMEType: "audio/L16;rate=24000", Data: pcm16(1, 2, 3)},
						}}},
					}},
				}, nil
			},
		}
		s := NewSpeaker(models, "gemini-2.5-flash-preview-tts", "Kore")

		data, err := s.Synthesize(context.Background(), "Hello there")
		require.NoError(t, err)
		assert.Equal(t, "RIFF", string(data[:4]))
		assert.Equal(t, "gemini-2.5-flash-preview-tts", gotModel)
		assert.Equal(t, []string{"AUDIO"}, gotConfig.ResponseModalities)
		assert.Equal(t, "Kore", gotConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
	})

	t.Run("joins audio split across parts", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{
			GenerateContentFn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return &genai.GenerateContentResponse{
					Candidates: []*genai.Candidate{{
						Content: &genai.Content{Parts: []*genai.Part{
							{InlineData: &genai.Blob{MIMEType: "audio/L16;rate=24000", Data: pcm16(1, 2)}},
							{InlineData: &genai.Blob{MIMEType: "audio/L16;rate=24000", Data: pcm16(3, 4, 5)}},
						}},
					}},
				}, nil
			},
		}

		data, err := NewSpeaker(models, "m", "v").Synthesize(context.Background(), "A long summary")
		require.NoError(t, err)

		buf, err := wav.NewDecoder(bytes.NewReader(data)).FullPCMBuffer()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, buf.Data)
	})

	t.Run("no audio in response", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{
			GenerateContentFn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse("sorry"), nil
			},
		}
		_, err := NewSpeaker(models, "m", "v").Synthesize(context.Background(), "Hello")
		require.Error(t, err)
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()

		_, err := NewSpeaker(&fakeModels{}, "m", "v").Synthesize(context.Background(), "   ")
		require.Error(t, err)
	})
}

package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini TTS returns raw 16-bit little-endian mono PCM at 24kHz.
const (
	geminiSampleRate = 24000
	geminiChannels   = 1
	geminiBitDepth   = 16
)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GeminiSynthesizer implements Synthesizer with the Gemini speech models
type GeminiSynthesizer struct {
	generate generateFunc
	model    string
	voice    string
}

// NewGeminiSynthesizer creates a Gemini synthesizer
func NewGeminiSynthesizer(ctx context.Context, cfg *Config) (*GeminiSynthesizer, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGeminiSynthesizer(client.Models.GenerateContent, cfg), nil
}

func newGeminiSynthesizer(generate generateFunc, cfg *Config) *GeminiSynthesizer {
	s := &GeminiSynthesizer{generate: generate, model: cfg.GeminiModel, voice: cfg.GeminiVoice}
	if s.model == "" {
		s.model = DefaultConfig().GeminiModel
	}
	if s.voice == "" {
		s.voice = DefaultConfig().GeminiVoice
	}
	return s
}

// Synthesize asks the model for an audio response and stores it as WAV
func (s *GeminiSynthesizer) Synthesize(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	contents := []*genai.Content{genai.NewContentFromText(strings.TrimSpace(text), genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voice},
			},
		},
	}

	resp, err := s.generate(ctx, s.model, contents, config)
	if err != nil {
		return fmt.Errorf("Gemini TTS API error: %w", err)
	}

	pcm := audioData(resp)
	if len(pcm) == 0 {
		return fmt.Errorf("no audio data received from Gemini")
	}

	var buf bytes.Buffer
	if err := encodeWAV(&buf, pcm, geminiSampleRate, geminiChannels, geminiBitDepth); err != nil {
		return err
	}
	return writeAudio(outputFile, &buf, "Gemini")
}

func audioData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var pcm []byte
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil {
			pcm = append(pcm, part.InlineData.Data...)
		}
	}
	return pcm
}

// Name returns the backend name
func (s *GeminiSynthesizer) Name() string {
	return "gemini"
}

// IsAvailable checks that a client was configured
func (s *GeminiSynthesizer) IsAvailable() error {
	if s.generate == nil {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}

// CacheKey identifies the settings that change the rendered audio.
func (s *GeminiSynthesizer) CacheKey() string {
	return fmt.Sprintf("gemini|%s|%s", s.model, s.voice)
}

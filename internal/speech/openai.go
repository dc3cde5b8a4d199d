package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type speechClient interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// OpenAISynthesizer implements Synthesizer for OpenAI TTS
type OpenAISynthesizer struct {
	client      speechClient
	model       string
	voice       string
	speed       float64
	instruction string
}

// NewOpenAISynthesizer creates a new OpenAI TTS synthesizer
func NewOpenAISynthesizer(cfg *Config) (*OpenAISynthesizer, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return newOpenAISynthesizer(openai.NewClient(cfg.OpenAIKey), cfg), nil
}

func newOpenAISynthesizer(client speechClient, cfg *Config) *OpenAISynthesizer {
	s := &OpenAISynthesizer{
		client:      client,
		model:       cfg.OpenAIModel,
		voice:       cfg.OpenAIVoice,
		speed:       cfg.OpenAISpeed,
		instruction: cfg.OpenAIInstruction,
	}
	if s.model == "" {
		s.model = string(openai.TTSModel1)
	}
	if s.voice == "" {
		s.voice = string(openai.VoiceAlloy)
	}
	if s.speed <= 0 {
		s.speed = 1.0
	}
	return s
}

// Synthesize generates WAV audio using OpenAI TTS
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          strings.TrimSpace(text),
		Voice:          openai.SpeechVoice(s.voice),
		Speed:          s.speed,
		ResponseFormat: openai.SpeechResponseFormatWav,
	}
	if s.supportsInstructions() {
		req.Instructions = s.instruction
	}

	response, err := s.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") && s.supportsInstructions() {
			return fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try speech.openai_model tts-1-hd instead", err, s.model)
		}
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	return writeAudio(outputFile, response, "OpenAI")
}

func (s *OpenAISynthesizer) supportsInstructions() bool {
	return s.instruction != "" && (s.model == "gpt-4o-mini-tts" || s.model == "gpt-4o-mini-audio-preview")
}

// Name returns the backend name
func (s *OpenAISynthesizer) Name() string {
	return "openai"
}

// IsAvailable checks that a client was configured. It does not call the API.
func (s *OpenAISynthesizer) IsAvailable() error {
	if s.client == nil {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// CacheKey identifies the settings that change the rendered audio.
func (s *OpenAISynthesizer) CacheKey() string {
	key := fmt.Sprintf("openai|%s|%s|%.2f", s.model, s.voice, s.speed)
	if s.supportsInstructions() {
		key += "|" + s.instruction
	}
	return key
}

func writeAudio(outputFile string, r io.Reader, backend string) error {
	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, r)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("no audio data received from %s", backend)
	}
	return nil
}

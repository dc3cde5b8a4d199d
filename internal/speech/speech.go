package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Backend names accepted by NewSynthesizer.
const (
	BackendESpeak = "espeak"
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
	BackendLog    = "log"
)

// AudioExt is the extension of every file a Synthesizer writes.
const AudioExt = ".wav"

// Sink speaks text. Implementations must never panic from Stop or
// IsSpeaking; a sink that cannot tell reports false.
type Sink interface {
	// Speak voices text. With interrupt set, anything still playing or
	// queued is dropped first.
	Speak(ctx context.Context, text string, interrupt bool) error
	Stop()
	IsSpeaking() bool
	Name() string
}

// Synthesizer defines the interface for text-to-speech backends
type Synthesizer interface {
	// Synthesize renders text as WAV audio into outputFile
	Synthesize(ctx context.Context, text string, outputFile string) error

	// Name returns the backend name
	Name() string

	// IsAvailable checks if the backend is properly configured and available
	IsAvailable() error
}

// Config holds configuration for every speech backend
type Config struct {
	Backend  string // "espeak", "openai", "gemini" or "log"
	Fallback string // Backend used when the primary fails, empty for none

	// espeak-ng settings
	Voice     string // Voice variant (e.g., "en", "en+f3")
	Speed     int    // Words per minute (80-450)
	Pitch     int    // 0 to 99
	Amplitude int    // 0 to 200
	WordGap   int    // Gap between words in 10ms units

	// OpenAI settings
	OpenAIKey         string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "nova", ...
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts

	// Gemini settings
	GeminiKey   string
	GeminiModel string
	GeminiVoice string

	// Cache settings
	Cache      bool
	CacheDir   string
	CacheMaxMB int
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:           BackendESpeak,
		Voice:             "en",
		Speed:             160,
		Pitch:             50,
		Amplitude:         100,
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "nova",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "Speak in a warm, natural voice at a calm conversational pace.",
		GeminiModel:       "gemini-2.5-flash-preview-tts",
		GeminiVoice:       "Kore",
		Cache:             true,
		CacheMaxMB:        200,
	}
}

// IsCloud reports whether backend calls a remote API.
func IsCloud(backend string) bool {
	return backend == BackendOpenAI || backend == BackendGemini
}

// NewSynthesizer creates the synthesizer for cfg.Backend. Cloud backends are
// wrapped in a circuit breaker, and cfg.Fallback, when set, is tried after
// the primary fails.
func NewSynthesizer(cfg *Config, logger *slog.Logger) (Synthesizer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	primary, err := newBackend(cfg, cfg.Backend, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Fallback == "" || cfg.Fallback == cfg.Backend {
		return primary, nil
	}

	fallback, err := newBackend(cfg, cfg.Fallback, logger)
	if err != nil {
		return nil, fmt.Errorf("fallback backend: %w", err)
	}
	return NewSynthesizerWithFallback(primary, fallback, logger), nil
}

func newBackend(cfg *Config, backend string, logger *slog.Logger) (Synthesizer, error) {
	switch strings.ToLower(backend) {
	case BackendESpeak:
		return NewESpeak(cfg), nil
	case BackendOpenAI:
		s, err := NewOpenAISynthesizer(cfg)
		if err != nil {
			return nil, err
		}
		return NewBreakerSynthesizer(s, logger), nil
	case BackendGemini:
		s, err := NewGeminiSynthesizer(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return NewBreakerSynthesizer(s, logger), nil
	default:
		return nil, fmt.Errorf("unknown speech backend: %s", backend)
	}
}

package cli

import (
	"io"
	"log/slog"

	"codeberg.org/snonux/sgs/internal/logging"
	"codeberg.org/snonux/sgs/internal/speech"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	SystemPath string
	TUI        bool
	Debug      bool
	LogLevel   string

	// Speech flags
	Speech     string
	Fallback   string
	Voice      string
	Speed      int
	Pitch      int
	Amplitude  int
	WordGap    int
	Cache      bool
	CacheDir   string
	CacheMaxMB int

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Gemini flags
	GeminiModel string
	GeminiVoice string

	// Logger is opened before any command runs and closed after it.
	Logger  *slog.Logger
	runtime logging.Runtime
	// Console gets a copy of every log record when gui.debug is set.
	Console io.Writer
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	def := speech.DefaultConfig()
	return &Flags{
		LogLevel:          "info",
		Speech:            def.Backend,
		Voice:             def.Voice,
		Speed:             def.Speed,
		Pitch:             def.Pitch,
		Amplitude:         def.Amplitude,
		Cache:             def.Cache,
		CacheDir:          speech.DefaultCacheDir(),
		CacheMaxMB:        def.CacheMaxMB,
		OpenAIModel:       def.OpenAIModel,
		OpenAIVoice:       def.OpenAIVoice,
		OpenAISpeed:       def.OpenAISpeed,
		OpenAIInstruction: def.OpenAIInstruction,
		GeminiModel:       def.GeminiModel,
		GeminiVoice:       def.GeminiVoice,
		Logger:            logging.Discard(),
	}
}

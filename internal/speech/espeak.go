package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// ESpeak renders speech with the espeak-ng command line tool
type ESpeak struct {
	command   string
	voice     string
	speed     int
	pitch     int
	amplitude int
	wordGap   int
}

// NewESpeak creates an espeak-ng synthesizer from the espeak fields of cfg
func NewESpeak(cfg *Config) *ESpeak {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &ESpeak{command: "espeak-ng", voice: cfg.Voice}
	if e.voice == "" {
		e.voice = "en"
	}
	e.SetSpeed(cfg.Speed)
	e.SetPitch(cfg.Pitch)
	e.SetAmplitude(cfg.Amplitude)
	e.SetWordGap(cfg.WordGap)
	return e
}

// Synthesize writes a WAV file for text
func (e *ESpeak) Synthesize(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, e.command, e.args(text, outputFile)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

func (e *ESpeak) args(text, outputFile string) []string {
	args := []string{
		"-v", e.voice,
		"-s", strconv.Itoa(e.speed),
		"-p", strconv.Itoa(e.pitch),
		"-a", strconv.Itoa(e.amplitude),
	}
	if e.wordGap > 0 {
		args = append(args, "-g", strconv.Itoa(e.wordGap))
	}
	// "--" keeps phrases starting with a dash from being read as options
	return append(args, "-w", outputFile, "--", text)
}

// Name returns the backend name
func (e *ESpeak) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (e *ESpeak) IsAvailable() error {
	if _, err := exec.LookPath(e.command); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// SetVoice updates the voice variant
func (e *ESpeak) SetVoice(voice string) {
	e.voice = voice
}

// SetSpeed updates the speech speed
func (e *ESpeak) SetSpeed(speed int) {
	e.speed = clamp(speed, 80, 450)
}

// SetPitch updates the pitch (0-99, 50 is default)
func (e *ESpeak) SetPitch(pitch int) {
	e.pitch = clamp(pitch, 0, 99)
}

// SetAmplitude updates the volume/amplitude (0-200, 100 is default)
func (e *ESpeak) SetAmplitude(amplitude int) {
	e.amplitude = clamp(amplitude, 0, 200)
}

// SetWordGap updates the gap between words in 10ms units
func (e *ESpeak) SetWordGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	e.wordGap = gap
}

// CacheKey identifies the settings that change the rendered audio.
func (e *ESpeak) CacheKey() string {
	return fmt.Sprintf("espeak|%s|%d|%d|%d|%d", e.voice, e.speed, e.pitch, e.amplitude, e.wordGap)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

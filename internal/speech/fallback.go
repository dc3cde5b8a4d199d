package speech

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/snonux/sgs/internal/logging"
)

// SynthesizerWithFallback wraps a primary synthesizer with a fallback option
type SynthesizerWithFallback struct {
	primary  Synthesizer
	fallback Synthesizer
	logger   *slog.Logger
}

// NewSynthesizerWithFallback creates a synthesizer that falls back to secondary if primary fails
func NewSynthesizerWithFallback(primary, fallback Synthesizer, logger *slog.Logger) Synthesizer {
	return &SynthesizerWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logging.OrDiscard(logger),
	}
}

// Synthesize tries the primary synthesizer first, falls back to secondary on error
func (s *SynthesizerWithFallback) Synthesize(ctx context.Context, text string, outputFile string) error {
	err := s.primary.Synthesize(ctx, text, outputFile)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}

	s.logger.Warn("primary speech backend failed",
		"backend", s.primary.Name(), "fallback", s.fallback.Name(), "error", err)

	if ferr := s.fallback.Synthesize(ctx, text, outputFile); ferr != nil {
		return fmt.Errorf("%s: %w; %s: %v", s.primary.Name(), err, s.fallback.Name(), ferr)
	}
	return nil
}

// Name returns the synthesizer name
func (s *SynthesizerWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", s.primary.Name(), s.fallback.Name())
}

// IsAvailable checks if at least one synthesizer is available
func (s *SynthesizerWithFallback) IsAvailable() error {
	primaryErr := s.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := s.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both backends unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

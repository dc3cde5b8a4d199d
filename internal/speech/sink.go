package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"codeberg.org/snonux/sgs/internal/logging"
)

// cacheKeyer is implemented by synthesizers whose output depends on settings
// beyond the text.
type cacheKeyer interface {
	CacheKey() string
}

// AudioSink speaks through a Synthesizer and plays the result. Synthesis
// happens inside Speak so failures reach the caller; playback is queued.
type AudioSink struct {
	synth  Synthesizer
	player Player
	cache  *Cache
	queue  *Queue
	tmpDir string
	logger *slog.Logger
}

// AudioSinkOptions configures NewAudioSink. Player and Cache are optional.
type AudioSinkOptions struct {
	Synthesizer Synthesizer
	Player      Player
	Cache       *Cache
	Logger      *slog.Logger
}

// NewAudioSink creates a sink and starts its playback queue
func NewAudioSink(ctx context.Context, opts AudioSinkOptions) (*AudioSink, error) {
	if opts.Synthesizer == nil {
		return nil, fmt.Errorf("audio sink needs a synthesizer")
	}
	tmpDir, err := os.MkdirTemp("", "sgs-speech-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	s := &AudioSink{
		synth:  opts.Synthesizer,
		player: opts.Player,
		cache:  opts.Cache,
		tmpDir: tmpDir,
		logger: logging.OrDiscard(opts.Logger),
	}
	if s.player == nil {
		s.player = NewCommandPlayer()
	}
	s.queue = NewQueue(ctx, s.play)
	s.queue.SetCallback(func(u Utterance) {
		if u.Status == StatusCancelled {
			os.Remove(u.File)
		}
	})
	return s, nil
}

// Speak renders text and queues it for playback
func (s *AudioSink) Speak(ctx context.Context, text string, interrupt bool) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	file, err := s.render(ctx, text)
	if err != nil {
		s.logger.Warn("speech synthesis failed", "backend", s.synth.Name(), "error", err)
		return err
	}

	if interrupt {
		s.queue.Interrupt()
	}
	u := s.queue.Enqueue(text, file)
	s.logger.Debug("utterance queued", "id", u.ID.String(), "interrupt", interrupt)
	return nil
}

func (s *AudioSink) render(ctx context.Context, text string) (string, error) {
	f, err := os.CreateTemp(s.tmpDir, "utterance-*"+AudioExt)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	file := f.Name()
	f.Close()

	var key string
	if s.cache != nil {
		key = Key(s.settings(), text)
		hit, err := s.cache.Fetch(key, file)
		if err != nil {
			s.logger.Warn("speech cache read failed", "error", err)
		}
		if hit {
			return file, nil
		}
	}

	if err := s.synth.Synthesize(ctx, text, file); err != nil {
		os.Remove(file)
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Store(key, file); err != nil {
			s.logger.Warn("speech cache write failed", "error", err)
		}
	}
	return file, nil
}

func (s *AudioSink) settings() string {
	if k, ok := s.synth.(cacheKeyer); ok {
		return k.CacheKey()
	}
	return s.synth.Name()
}

func (s *AudioSink) play(ctx context.Context, u Utterance) error {
	defer os.Remove(u.File)
	err := s.player.Play(ctx, u.File)
	if err != nil && ctx.Err() == nil {
		s.logger.Warn("playback failed", "id", u.ID.String(), "error", err)
	}
	return err
}

// Stop cuts off playback and drops queued utterances
func (s *AudioSink) Stop() {
	s.queue.Interrupt()
}

// IsSpeaking reports whether anything is playing or queued
func (s *AudioSink) IsSpeaking() bool {
	return s.queue.Busy()
}

// Name returns the synthesizer name
func (s *AudioSink) Name() string {
	return s.synth.Name()
}

// Wait blocks until playback has finished
func (s *AudioSink) Wait(ctx context.Context) error {
	return s.queue.Wait(ctx)
}

// Queue exposes the playback queue for status displays
func (s *AudioSink) Queue() *Queue {
	return s.queue
}

// Close stops playback and removes temporary audio files
func (s *AudioSink) Close() error {
	s.queue.Close()
	return os.RemoveAll(filepath.Clean(s.tmpDir))
}

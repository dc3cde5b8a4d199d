package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/sgs/internal/logging"
	"codeberg.org/snonux/sgs/internal/obf"
	"codeberg.org/snonux/sgs/internal/speech"
	"codeberg.org/snonux/sgs/internal/system"
)

// LoadSystem loads the system at path, choosing the reader by extension.
// An empty path loads the bundled system.
func LoadSystem(path string, logger *slog.Logger) (*system.System, error) {
	if path == "" {
		return system.Default()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obf":
		return obf.ReadBoardFile(path, logger)
	case ".obz":
		return obf.ReadOBZ(path, logger)
	default:
		return system.LoadFile(path)
	}
}

// LoadSystem loads the system named by --system or system.path.
func (f *Flags) LoadSystem() (*system.System, error) {
	return LoadSystem(viper.GetString("system.path"), f.Logger)
}

// Speaker is a speech sink plus the resources behind it.
type Speaker struct {
	speech.Sink
	audio *speech.AudioSink
	cache  *speech.Cache
	max    int64
	logger *slog.Logger
}

// NewSpeaker builds the sink described by cfg. The log backend writes to
// out; every other backend synthesizes audio, optionally through the cache.
// A cache that cannot be opened is logged and skipped.
func NewSpeaker(ctx context.Context, cfg *speech.Config, out io.Writer, logger *slog.Logger) (*Speaker, error) {
	logger = logging.OrDiscard(logger)
	if strings.EqualFold(cfg.Backend, speech.BackendLog) {
		return &Speaker{Sink: speech.NewLogSink(out)}, nil
	}

	synth, err := speech.NewSynthesizer(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &Speaker{max: int64(cfg.CacheMaxMB) << 20, logger: logger}
	if cfg.Cache {
		cache, err := speech.OpenCache(cfg.CacheDir, logger)
		if err != nil {
			logger.Warn("speech cache disabled", "error", err)
		} else {
			s.cache = cache
		}
	}

	audio, err := speech.NewAudioSink(ctx, speech.AudioSinkOptions{
		Synthesizer: synth,
		Cache:       s.cache,
		Logger:      logger,
	})
	if err != nil {
		s.closeCache()
		return nil, err
	}
	s.Sink, s.audio = audio, audio
	logger.Info("speech ready", "backend", synth.Name(), "cache", s.cache != nil)
	return s, nil
}

// Wait blocks until queued audio has played.
func (s *Speaker) Wait(ctx context.Context) error {
	if s.audio == nil {
		return nil
	}
	return s.audio.Wait(ctx)
}

// Close stops playback, trims the cache to its limit and releases it.
func (s *Speaker) Close() error {
	var err error
	if s.audio != nil {
		err = s.audio.Close()
	}
	s.closeCache()
	return err
}

func (s *Speaker) closeCache() {
	if s.cache == nil {
		return
	}
	if s.max > 0 {
		if _, _, err := s.cache.Prune(s.max); err != nil {
			s.logger.Warn("speech cache prune failed", "error", err)
		}
	}
	s.cache.Close()
	s.cache = nil
}

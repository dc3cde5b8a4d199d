package speech

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// LogSink writes each utterance as a line of text instead of speaking it.
type LogSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogSink returns a sink writing to w
func NewLogSink(w io.Writer) *LogSink {
	return &LogSink{w: w}
}

// Speak writes text to the underlying writer
func (s *LogSink) Speak(ctx context.Context, text string, interrupt bool) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "say: %s\n", text)
	return err
}

// Stop does nothing; writes are never in progress.
func (s *LogSink) Stop() {}

// IsSpeaking always reports false.
func (s *LogSink) IsSpeaking() bool { return false }

// Name returns "log".
func (s *LogSink) Name() string { return BackendLog }

package speech

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/sgs/internal/logging"
)

// BreakerSynthesizer fails fast while a remote backend keeps failing.
type BreakerSynthesizer struct {
	next Synthesizer
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSynthesizer wraps next in a circuit breaker that opens after
// three consecutive failures and tries again after thirty seconds.
func NewBreakerSynthesizer(next Synthesizer, logger *slog.Logger) *BreakerSynthesizer {
	logger = logging.OrDiscard(logger)
	return &BreakerSynthesizer{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    next.Name(),
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("speech breaker state change", "backend", name, "from", from.String(), "to", to.String())
			},
			IsSuccessful: func(err error) bool {
				// a cancelled request says nothing about the backend
				return err == nil || err == context.Canceled
			},
		}),
	}
}

// Synthesize runs the wrapped synthesizer unless the breaker is open, in
// which case gobreaker.ErrOpenState is returned immediately.
func (b *BreakerSynthesizer) Synthesize(ctx context.Context, text string, outputFile string) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Synthesize(ctx, text, outputFile)
	})
	return err
}

// Name returns the wrapped synthesizer's name
func (b *BreakerSynthesizer) Name() string {
	return b.next.Name()
}

// IsAvailable reports the wrapped synthesizer's availability, or the open
// breaker.
func (b *BreakerSynthesizer) IsAvailable() error {
	if b.cb.State() == gobreaker.StateOpen {
		return gobreaker.ErrOpenState
	}
	return b.next.IsAvailable()
}

// State exposes the breaker state for diagnostics.
func (b *BreakerSynthesizer) State() gobreaker.State {
	return b.cb.State()
}

package speech

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status represents the current state of an utterance
type Status int

const (
	StatusQueued Status = iota
	StatusPlaying
	StatusDone
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusPlaying:
		return "Playing"
	case StatusDone:
		return "Done"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Utterance is one rendered phrase waiting for or going through playback
type Utterance struct {
	ID         ulid.ULID
	Text       string
	File       string
	Status     Status
	Err        error
	QueuedAt   time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// PlayFunc plays one utterance. It must return once ctx is cancelled.
type PlayFunc func(ctx context.Context, u Utterance) error

const historySize = 50

// Queue plays utterances one after another on a single worker goroutine
type Queue struct {
	play PlayFunc

	mu            sync.Mutex
	pending       []*Utterance
	current       *Utterance
	cancelCurrent context.CancelFunc
	interrupted   bool
	history       []Utterance
	idle          chan struct{}
	idleClosed    bool

	onUpdate func(Utterance)

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewQueue creates a playback queue and starts its worker
func NewQueue(ctx context.Context, play PlayFunc) *Queue {
	queueCtx, cancel := context.WithCancel(ctx)
	idle := make(chan struct{})
	close(idle)

	q := &Queue{
		play:       play,
		idle:       idle,
		idleClosed: true,
		wake:       make(chan struct{}, 1),
		ctx:        queueCtx,
		cancel:     cancel,
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// SetCallback sets the function called on every status change
func (q *Queue) SetCallback(onUpdate func(Utterance)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onUpdate = onUpdate
}

// Enqueue adds an utterance to the end of the queue
func (q *Queue) Enqueue(text, file string) Utterance {
	q.mu.Lock()
	u := &Utterance{
		ID:       ulid.Make(),
		Text:     text,
		File:     file,
		Status:   StatusQueued,
		QueuedAt: time.Now(),
	}
	if q.ctx.Err() != nil {
		u.Status = StatusFailed
		u.Err = errors.New("queue is shutting down")
		snapshot := *u
		q.mu.Unlock()
		return snapshot
	}
	q.pending = append(q.pending, u)
	if q.idleClosed {
		q.idle = make(chan struct{})
		q.idleClosed = false
	}
	snapshot := *u
	notify := q.onUpdate
	q.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return snapshot
}

// Interrupt cancels the utterance being played and drops everything queued
func (q *Queue) Interrupt() {
	q.mu.Lock()
	dropped := q.pending
	q.pending = nil
	now := time.Now()
	for _, u := range dropped {
		u.Status = StatusCancelled
		u.FinishedAt = now
		q.remember(*u)
	}
	if q.cancelCurrent != nil {
		q.interrupted = true
		q.cancelCurrent()
	}
	notify := q.onUpdate
	q.mu.Unlock()

	if notify != nil {
		for _, u := range dropped {
			notify(*u)
		}
	}
}

// Busy reports whether an utterance is playing or queued
func (q *Queue) Busy() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current != nil || len(q.pending) > 0
}

// Wait blocks until the queue is idle or ctx is done
func (q *Queue) Wait(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// History returns the most recent finished utterances, oldest first
func (q *Queue) History() []Utterance {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Utterance(nil), q.history...)
}

// Close stops the worker, cancelling anything still playing or queued
func (q *Queue) Close() {
	q.Interrupt()
	q.cancel()
	q.wg.Wait()
}

func (q *Queue) run() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			q.mu.Lock()
			for _, u := range q.pending {
				u.Status = StatusCancelled
				q.remember(*u)
			}
			q.pending = nil
			q.markIdle()
			q.mu.Unlock()
			return
		case <-q.wake:
		}

		for {
			u, ctx, ok := q.next()
			if !ok {
				break
			}
			err := q.play(ctx, u)
			q.finish(err)
		}
	}
}

// next moves the head of the queue to current
func (q *Queue) next() (Utterance, context.Context, bool) {
	q.mu.Lock()
	if len(q.pending) == 0 || q.ctx.Err() != nil {
		q.markIdle()
		q.mu.Unlock()
		return Utterance{}, nil, false
	}
	u := q.pending[0]
	q.pending = q.pending[1:]
	u.Status = StatusPlaying
	u.StartedAt = time.Now()

	ctx, cancel := context.WithCancel(q.ctx)
	q.current = u
	q.cancelCurrent = cancel
	q.interrupted = false
	snapshot := *u
	notify := q.onUpdate
	q.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
	return snapshot, ctx, true
}

func (q *Queue) finish(err error) {
	q.mu.Lock()
	u := q.current
	q.cancelCurrent()
	switch {
	case q.interrupted || q.ctx.Err() != nil:
		u.Status = StatusCancelled
	case err != nil:
		u.Status = StatusFailed
		u.Err = err
	default:
		u.Status = StatusDone
	}
	u.FinishedAt = time.Now()
	q.current = nil
	q.cancelCurrent = nil
	q.interrupted = false
	q.remember(*u)
	snapshot := *u
	notify := q.onUpdate
	q.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
}

// remember appends to the bounded history. Caller holds mu.
func (q *Queue) remember(u Utterance) {
	q.history = append(q.history, u)
	if len(q.history) > historySize {
		q.history = q.history[len(q.history)-historySize:]
	}
}

// markIdle releases Wait callers. Caller holds mu.
func (q *Queue) markIdle() {
	if q.current == nil && len(q.pending) == 0 && !q.idleClosed {
		close(q.idle)
		q.idleClosed = true
	}
}

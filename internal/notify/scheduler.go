// Package notify schedules one-shot session alerts and hands them to a
// Sender when they come due.
package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tomato/internal/core/clock"
	xlog "tomato/internal/log"
)

// ErrClosed is returned when scheduling on a closed Scheduler.
var ErrClosed = errors.New("notification scheduler closed")

// Sender delivers a notification immediately.
type Sender interface {
	Send(title, body string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(title, body string) error

// Send calls fn(title, body).
func (fn SenderFunc) Send(title, body string) error {
	return fn(title, body)
}

// Config contains optional Scheduler dependencies.
type Config struct {
	Clock  clock.Clock
	Logger *zerolog.Logger
}

// Scheduler keeps pending one-shot notifications in memory.
type Scheduler struct {
	mu      sync.Mutex
	clock   clock.Clock
	sender  Sender
	logger  zerolog.Logger
	pending map[string]clock.Timer
	closed  bool
}

// NewScheduler creates a Scheduler delivering through sender.
func NewScheduler(sender Sender, config Config) *Scheduler {
	if config.Clock == nil {
		config.Clock = clock.System()
	}
	logger := xlog.WithComponent("notify")
	if config.Logger != nil {
		logger = *config.Logger
	}
	return &Scheduler{
		clock:   config.Clock,
		sender:  sender,
		logger:  logger,
		pending: make(map[string]clock.Timer),
	}
}

// ScheduleOneShot arranges for title/body to be sent at fireAt and returns
// a handle for the pending notification. A fireAt in the past fires as
// soon as possible.
func (scheduler *Scheduler) ScheduleOneShot(fireAt time.Time, title, body string) (string, error) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.closed {
		return "", ErrClosed
	}

	handle := uuid.NewString()
	delay := max(fireAt.Sub(scheduler.clock.Now()), 0)
	scheduler.pending[handle] = scheduler.clock.AfterFunc(delay, func() {
		scheduler.fire(handle, title, body)
	})

	scheduler.logger.Debug().
		Str("handle", handle).
		Time("fire_at", fireAt).
		Str("title", title).
		Msg("notification scheduled")
	return handle, nil
}

// CancelAll drops every pending notification. Safe when nothing is pending.
func (scheduler *Scheduler) CancelAll() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.cancelLocked()
}

// Pending returns the number of notifications waiting to fire.
func (scheduler *Scheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.pending)
}

// Close cancels everything and rejects further scheduling.
func (scheduler *Scheduler) Close() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.closed = true
	scheduler.cancelLocked()
}

func (scheduler *Scheduler) cancelLocked() {
	for handle, timer := range scheduler.pending {
		timer.Stop()
		delete(scheduler.pending, handle)
	}
}

func (scheduler *Scheduler) fire(handle, title, body string) {
	scheduler.mu.Lock()
	// A timer may already be running its callback when it gets cancelled.
	if _, ok := scheduler.pending[handle]; !ok {
		scheduler.mu.Unlock()
		return
	}
	delete(scheduler.pending, handle)
	scheduler.mu.Unlock()

	if scheduler.sender == nil {
		return
	}
	if err := scheduler.sender.Send(title, body); err != nil {
		scheduler.logger.Warn().Err(err).Str("handle", handle).Msg("deliver notification")
		return
	}
	scheduler.logger.Info().Str("handle", handle).Str("title", title).Msg("notification delivered")
}

package timekeeper

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tomato/internal/core/clock"
	"tomato/internal/core/model"
	xlog "tomato/internal/log"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        clock.Clock
	Notifier     Notifier
	Logger       *zerolog.Logger

	// ResetToFocus makes Reset return to a full focus session instead of
	// restarting the current session.
	ResetToFocus bool
	// ClampAdjust clamps AdjustBy into [1s, full session] instead of
	// rejecting out-of-range proposals.
	ClampAdjust bool
}

// TimeKeeper is the Pomodoro session state machine. Remaining time is
// always derived from an absolute end time, so delayed or missed ticks
// never accumulate drift.
type TimeKeeper struct {
	mu        sync.Mutex
	config    model.TimerConfig
	options   Config
	clock     clock.Clock
	notifier  Notifier
	logger    zerolog.Logger
	session   Session
	active    bool
	remaining time.Duration
	endAt     time.Time
	events    []chan Event
	stopCh    chan struct{}
	loopDone  chan struct{}
	closed    bool
}

// New creates an idle TimeKeeper at the start of a focus session.
func New(config model.TimerConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clock.System()
	}
	if options.Notifier == nil {
		options.Notifier = noopNotifier{}
	}
	config = model.TimerConfig{
		Focus: wholeSeconds(config.Focus),
		Break: wholeSeconds(config.Break),
	}
	if !config.Valid() {
		config = model.DefaultTimerConfig()
	}

	logger := xlog.WithComponent("timekeeper")
	if options.Logger != nil {
		logger = *options.Logger
	}

	keeper := &TimeKeeper{
		config:   config,
		options:  options,
		clock:    options.Clock,
		notifier: options.Notifier,
		logger:   logger,
		session:  SessionWork,
	}
	keeper.remaining = config.Focus
	return keeper
}

// Subscribe registers a new observer channel. Events are published before
// the operation that caused them returns; a full channel drops the event.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Status returns the current state.
func (keeper *TimeKeeper) Status() Status {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.statusLocked()
}

// Start begins counting down the current session. No-op while running.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.active || keeper.closed {
		return
	}

	now := keeper.clock.Now()
	keeper.active = true
	keeper.endAt = now.Add(keeper.remaining)
	keeper.scheduleLocked()
	keeper.startLoopLocked()

	keeper.logger.Info().
		Str("session", string(keeper.session)).
		Dur("remaining", keeper.remaining).
		Time("end_at", keeper.endAt).
		Msg("timer started")
	keeper.emitLocked(EventStateChange, now)
}

// Stop freezes the remaining time. No-op while idle. When Stop returns the
// tick loop has exited and no notification is pending.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if !keeper.active || keeper.closed {
		keeper.mu.Unlock()
		return
	}

	now := keeper.clock.Now()
	keeper.remaining = keeper.derivedLocked(now)
	done := keeper.haltLocked()

	keeper.logger.Info().
		Str("session", string(keeper.session)).
		Dur("remaining", keeper.remaining).
		Msg("timer stopped")
	keeper.emitLocked(EventStateChange, now)
	keeper.mu.Unlock()

	<-done
}

// Reset stops the timer and refills the current session.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	done := keeper.resetLocked()
	keeper.emitLocked(EventStateChange, keeper.clock.Now())
	keeper.mu.Unlock()

	<-done
}

// Configure applies new session lengths and resets. Invalid configs are
// ignored.
func (keeper *TimeKeeper) Configure(config model.TimerConfig) {
	config = model.TimerConfig{
		Focus: wholeSeconds(config.Focus),
		Break: wholeSeconds(config.Break),
	}
	if !config.Valid() {
		keeper.logger.Debug().
			Dur("focus", config.Focus).
			Dur("break", config.Break).
			Msg("ignoring invalid timer config")
		return
	}

	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.config = config
	done := keeper.resetLocked()

	keeper.logger.Info().
		Dur("focus", keeper.config.Focus).
		Dur("break", keeper.config.Break).
		Msg("timer configured")
	keeper.emitLocked(EventStateChange, keeper.clock.Now())
	keeper.mu.Unlock()

	<-done
}

// AdjustBy moves the end of the running session by delta, truncated to
// whole seconds. Proposals that would leave no time or exceed the full
// session are rejected.
func (keeper *TimeKeeper) AdjustBy(delta time.Duration) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.active || keeper.closed {
		return
	}

	now := keeper.clock.Now()
	full := keeper.fullDurationLocked()
	proposed := keeper.derivedLocked(now) + delta.Truncate(time.Second)
	if keeper.options.ClampAdjust {
		if full < time.Second {
			return
		}
		proposed = min(max(proposed, time.Second), full)
	} else if proposed <= 0 || proposed > full {
		return
	}

	keeper.remaining = proposed
	keeper.endAt = now.Add(proposed)
	keeper.scheduleLocked()
	keeper.emitLocked(EventAdjust, now)
}

// Recompute derives the remaining time from the wall clock, switching
// sessions when the current one is exhausted. It runs on every tick and
// may be called when the host resumes from suspension.
func (keeper *TimeKeeper) Recompute() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.active || keeper.closed {
		return
	}
	keeper.recomputeLocked(keeper.clock.Now())
}

// Close stops the tick loop and closes observers. The timer state is left
// as is.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	done := keeper.stopLoopLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	<-done
	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) run(ticker clock.Ticker, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			keeper.tick(stopCh)
		}
	}
}

func (keeper *TimeKeeper) tick(runCh <-chan struct{}) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	// A tick from a loop that was stopped while waiting for the lock.
	if !keeper.active || keeper.stopCh != runCh {
		return
	}
	keeper.recomputeLocked(keeper.clock.Now())
}

func (keeper *TimeKeeper) recomputeLocked(now time.Time) {
	if keeper.endAt.Sub(now) <= 0 {
		keeper.switchSessionLocked(now)
		return
	}
	remaining := keeper.derivedLocked(now)
	if remaining == keeper.remaining {
		return
	}
	keeper.remaining = remaining
	keeper.emitLocked(EventProgress, now)
}

func (keeper *TimeKeeper) switchSessionLocked(now time.Time) {
	if keeper.session == SessionWork {
		keeper.session = SessionBreak
	} else {
		keeper.session = SessionWork
	}
	keeper.remaining = keeper.fullDurationLocked()
	keeper.endAt = now.Add(keeper.remaining)
	keeper.scheduleLocked()

	keeper.logger.Info().
		Str("session", string(keeper.session)).
		Dur("remaining", keeper.remaining).
		Msg("session switched")
	keeper.emitLocked(EventSessionSwitch, now)
}

func (keeper *TimeKeeper) resetLocked() <-chan struct{} {
	done := closedChan()
	if keeper.active {
		done = keeper.haltLocked()
	} else {
		keeper.notifier.CancelAll()
	}
	if keeper.options.ResetToFocus {
		keeper.session = SessionWork
	}
	keeper.remaining = keeper.fullDurationLocked()
	return done
}

// haltLocked leaves the running state and cancels the pending alert.
func (keeper *TimeKeeper) haltLocked() <-chan struct{} {
	keeper.active = false
	keeper.endAt = time.Time{}
	keeper.notifier.CancelAll()
	return keeper.stopLoopLocked()
}

func (keeper *TimeKeeper) startLoopLocked() {
	stopCh := make(chan struct{})
	done := make(chan struct{})
	keeper.stopCh = stopCh
	keeper.loopDone = done
	go keeper.run(keeper.clock.NewTicker(keeper.options.TickInterval), stopCh, done)
}

func (keeper *TimeKeeper) stopLoopLocked() <-chan struct{} {
	if keeper.stopCh == nil {
		return closedChan()
	}
	close(keeper.stopCh)
	done := keeper.loopDone
	keeper.stopCh = nil
	keeper.loopDone = nil
	return done
}

func (keeper *TimeKeeper) scheduleLocked() {
	keeper.notifier.CancelAll()
	title, body := notificationContent(keeper.session)
	if _, err := keeper.notifier.ScheduleOneShot(keeper.endAt, title, body); err != nil {
		keeper.logger.Warn().Err(err).Time("fire_at", keeper.endAt).Msg("schedule session notification")
	}
}

func (keeper *TimeKeeper) derivedLocked(now time.Time) time.Duration {
	if !keeper.active {
		return keeper.remaining
	}
	left := keeper.endAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return min(ceilSeconds(left), keeper.fullDurationLocked())
}

func (keeper *TimeKeeper) fullDurationLocked() time.Duration {
	if keeper.session == SessionWork {
		return keeper.config.Focus
	}
	return keeper.config.Break
}

func (keeper *TimeKeeper) statusLocked() Status {
	return Status{
		Session:       keeper.session,
		Active:        keeper.active,
		Remaining:     keeper.remaining,
		EndAt:         keeper.endAt,
		FocusDuration: keeper.config.Focus,
		BreakDuration: keeper.config.Break,
	}
}

func (keeper *TimeKeeper) emitLocked(eventType EventType, at time.Time) {
	event := Event{
		Type:   eventType,
		Status: keeper.statusLocked(),
		At:     at,
	}
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func ceilSeconds(value time.Duration) time.Duration {
	return (value + time.Second - 1).Truncate(time.Second)
}

func wholeSeconds(value time.Duration) time.Duration {
	return value.Truncate(time.Second)
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

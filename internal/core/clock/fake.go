package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
	timers  []*fakeTimer
}

type fakeTicker struct {
	clock  *Fake
	period time.Duration
	next   time.Time
	ch     chan time.Time
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	fn       func()
}

// NewFake creates a fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake current time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// NewTicker registers a ticker whose channel holds at most one pending tick.
func (fake *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker period")
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	ticker := &fakeTicker{
		clock:  fake,
		period: d,
		next:   fake.now.Add(d),
		ch:     make(chan time.Time, 1),
	}
	fake.tickers = append(fake.tickers, ticker)
	return ticker
}

// AfterFunc registers f to run once the clock reaches now+d.
func (fake *Fake) AfterFunc(d time.Duration, f func()) Timer {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	timer := &fakeTimer{
		clock:    fake,
		deadline: fake.now.Add(d),
		fn:       f,
	}
	fake.timers = append(fake.timers, timer)
	return timer
}

// Advance moves the clock forward, delivers due ticks and runs due
// callbacks on the calling goroutine in deadline order.
func (fake *Fake) Advance(d time.Duration) {
	fake.mu.Lock()
	fake.now = fake.now.Add(d)
	now := fake.now

	for _, ticker := range fake.tickers {
		if now.Before(ticker.next) {
			continue
		}
		select {
		case ticker.ch <- now:
		default:
		}
		for !now.Before(ticker.next) {
			ticker.next = ticker.next.Add(ticker.period)
		}
	}

	var due []*fakeTimer
	kept := fake.timers[:0]
	for _, timer := range fake.timers {
		if now.Before(timer.deadline) {
			kept = append(kept, timer)
			continue
		}
		due = append(due, timer)
	}
	fake.timers = kept
	fake.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, timer := range due {
		timer.fn()
	}
}

// Tickers reports how many tickers are running.
func (fake *Fake) Tickers() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.tickers)
}

// Timers reports how many callbacks are still waiting.
func (fake *Fake) Timers() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.timers)
}

func (ticker *fakeTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *fakeTicker) Stop() {
	ticker.clock.mu.Lock()
	defer ticker.clock.mu.Unlock()
	for i, candidate := range ticker.clock.tickers {
		if candidate == ticker {
			ticker.clock.tickers = append(ticker.clock.tickers[:i], ticker.clock.tickers[i+1:]...)
			return
		}
	}
}

func (timer *fakeTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	for i, candidate := range timer.clock.timers {
		if candidate == timer {
			timer.clock.timers = append(timer.clock.timers[:i], timer.clock.timers[i+1:]...)
			return true
		}
	}
	return false
}

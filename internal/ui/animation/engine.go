// Package animation drives the breathing gradient shown behind a running
// countdown.
package animation

import (
	"context"
	"image/color"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	// MoveInterval is the time between two random gradient centers.
	MoveInterval  Range
	EaseDuration  time.Duration
	FrameInterval time.Duration
	Opacity       float64
	Colors        []color.Color
}

// Point is a position in unit coordinates, (0.5, 0.5) being the center.
type Point struct {
	X float64
	Y float64
}

// Offset converts the point to a radial gradient center offset.
func (point Point) Offset() (float64, float64) {
	return point.X - 0.5, point.Y - 0.5
}

// Frame is one rendered step of the gradient.
type Frame struct {
	Center     Point
	StartColor color.Color
	EndColor   color.Color
}

// Engine moves the gradient center to random points with an ease-in-out
// transition.
type Engine struct {
	mu      sync.Mutex
	config  Config
	apply   func(Frame)
	cancel  context.CancelFunc
	done    chan struct{}
	rng     *rand.Rand
	current Point
	color   int
}

// New creates a new animation engine. apply is called from the engine
// goroutine; UI code must marshal it onto the UI thread.
func New(config Config, apply func(Frame)) *Engine {
	defaults := DefaultConfig()
	if config.MoveInterval.Min <= 0 {
		config.MoveInterval = defaults.MoveInterval
	}
	if config.EaseDuration <= 0 {
		config.EaseDuration = defaults.EaseDuration
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = defaults.FrameInterval
	}
	if len(config.Colors) == 0 {
		config.Colors = Palette
	}
	return &Engine{
		config:  config,
		apply:   apply,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		current: Point{X: 0.5, Y: 0.5},
	}
}

// Start begins the breathing loop, replacing any running one.
func (engine *Engine) Start(ctx context.Context) {
	engine.Stop()

	engine.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go engine.run(runCtx, done)
}

// Stop terminates the animation and waits for its goroutine.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	done := engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	engine.emit(engine.frame(engine.current, engine.color))
	for {
		if !sleepWithContext(ctx, engine.config.MoveInterval.Random(engine.rng)) {
			return
		}
		from := engine.current
		target := Point{X: engine.rng.Float64(), Y: engine.rng.Float64()}
		engine.color = (engine.color + 1) % len(engine.config.Colors)
		if !engine.ease(ctx, from, target) {
			return
		}
		engine.current = target
	}
}

func (engine *Engine) ease(ctx context.Context, from, to Point) bool {
	steps := int(engine.config.EaseDuration / engine.config.FrameInterval)
	for step := 1; step <= steps; step++ {
		if !sleepWithContext(ctx, engine.config.FrameInterval) {
			return false
		}
		engine.emit(engine.frame(Lerp(from, to, EaseInOut(float64(step)/float64(steps))), engine.color))
	}
	if steps == 0 {
		engine.emit(engine.frame(to, engine.color))
	}
	return true
}

func (engine *Engine) frame(center Point, colorIndex int) Frame {
	colors := engine.config.Colors
	return Frame{
		Center:     center,
		StartColor: withOpacity(colors[colorIndex%len(colors)], engine.config.Opacity),
		EndColor:   withOpacity(colors[(colorIndex+1)%len(colors)], engine.config.Opacity),
	}
}

func (engine *Engine) emit(frame Frame) {
	if engine.apply != nil {
		engine.apply(frame)
	}
}

// EaseInOut maps linear progress in [0, 1] onto a sine ease-in-out curve.
func EaseInOut(progress float64) float64 {
	progress = math.Max(0, math.Min(1, progress))
	return -(math.Cos(math.Pi*progress) - 1) / 2
}

// Lerp interpolates between two points.
func Lerp(from, to Point, progress float64) Point {
	return Point{
		X: from.X + (to.X-from.X)*progress,
		Y: from.Y + (to.Y-from.Y)*progress,
	}
}

func withOpacity(value color.Color, opacity float64) color.Color {
	if opacity <= 0 || opacity >= 1 {
		return value
	}
	nrgba := color.NRGBAModel.Convert(value).(color.NRGBA)
	nrgba.A = uint8(float64(nrgba.A) * opacity)
	return nrgba
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

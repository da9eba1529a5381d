package model

import "time"

const (
	// DefaultFocusDuration is the length of a focus session.
	DefaultFocusDuration = 25 * time.Minute
	// DefaultBreakDuration is the length of a break session.
	DefaultBreakDuration = 5 * time.Minute
)

// TimerConfig contains the session lengths used by the TimeKeeper.
type TimerConfig struct {
	Focus time.Duration
	Break time.Duration
}

// DefaultTimerConfig returns the classic 25/5 Pomodoro.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Focus: DefaultFocusDuration,
		Break: DefaultBreakDuration,
	}
}

// Valid reports whether the config can drive a timer: focus must be
// positive and break must not be negative.
func (config TimerConfig) Valid() bool {
	return config.Focus > 0 && config.Break >= 0
}

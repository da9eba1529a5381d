package model

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MinMinutes and MaxMinutes bound both pickers.
	MinMinutes = 0
	MaxMinutes = 60
)

var (
	// ErrFocusRequired is returned when focus minutes is zero.
	ErrFocusRequired = errors.New("focus minutes must be greater than zero")
	// ErrMinutesOutOfRange is returned for values outside [MinMinutes, MaxMinutes].
	ErrMinutesOutOfRange = errors.New("minutes out of range")
)

// Settings is the user-editable timer configuration.
type Settings struct {
	FocusMinutes int
	BreakMinutes int
}

// DefaultSettings returns default settings.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes: int(DefaultFocusDuration / time.Minute),
		BreakMinutes: int(DefaultBreakDuration / time.Minute),
	}
}

// SettingsFromConfig converts durations back to whole minutes.
func SettingsFromConfig(config TimerConfig) Settings {
	return Settings{
		FocusMinutes: int(config.Focus / time.Minute),
		BreakMinutes: int(config.Break / time.Minute),
	}
}

// InRange reports whether minutes fits a picker.
func InRange(minutes int) bool {
	return minutes >= MinMinutes && minutes <= MaxMinutes
}

// CanSave reports whether the save action should be enabled.
func (settings Settings) CanSave() bool {
	return settings.Validate() == nil
}

// Validate checks both pickers. A zero break is allowed.
func (settings Settings) Validate() error {
	if !InRange(settings.FocusMinutes) {
		return fmt.Errorf("focus %d: %w", settings.FocusMinutes, ErrMinutesOutOfRange)
	}
	if !InRange(settings.BreakMinutes) {
		return fmt.Errorf("break %d: %w", settings.BreakMinutes, ErrMinutesOutOfRange)
	}
	if settings.FocusMinutes == 0 {
		return ErrFocusRequired
	}
	return nil
}

// TimerConfig converts settings to TimerConfig.
func (settings Settings) TimerConfig() TimerConfig {
	return TimerConfig{
		Focus: time.Duration(settings.FocusMinutes) * time.Minute,
		Break: time.Duration(settings.BreakMinutes) * time.Minute,
	}
}

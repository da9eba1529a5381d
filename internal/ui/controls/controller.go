// Package controls maps user intents from any presentation onto the
// session timer.
package controls

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tomato/internal/core/model"
	"tomato/internal/core/timekeeper"
	xlog "tomato/internal/log"
)

// CrownStep is the adjustment applied per unit of crown input.
const CrownStep = time.Second

// Timer is the part of the TimeKeeper a presentation drives.
type Timer interface {
	Start()
	Stop()
	Reset()
	AdjustBy(delta time.Duration)
	Recompute()
	Configure(config model.TimerConfig)
	Status() timekeeper.Status
}

// Controller translates intents into timer operations.
type Controller struct {
	timer  Timer
	logger zerolog.Logger
}

// New creates a Controller for timer.
func New(timer Timer) *Controller {
	return &Controller{
		timer:  timer,
		logger: xlog.WithComponent("controls"),
	}
}

// Toggle starts an idle timer or stops a running one.
func (controller *Controller) Toggle() {
	if controller.timer.Status().Active {
		controller.timer.Stop()
		return
	}
	controller.timer.Start()
}

// ConfirmReset resets the timer after the user confirmed.
func (controller *Controller) ConfirmReset() {
	controller.timer.Reset()
}

// Crown turns one raw rotation delta into a one second nudge in the
// direction of rotation. The magnitude of delta is ignored.
func (controller *Controller) Crown(delta float64) {
	switch {
	case delta > 0:
		controller.timer.AdjustBy(CrownStep)
	case delta < 0:
		controller.timer.AdjustBy(-CrownStep)
	}
}

// SaveSettings applies new session lengths and resets the timer.
func (controller *Controller) SaveSettings(settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	controller.logger.Info().
		Int("focus_minutes", settings.FocusMinutes).
		Int("break_minutes", settings.BreakMinutes).
		Msg("settings saved")
	controller.timer.Configure(settings.TimerConfig())
	return nil
}

// Resume catches the timer up after the host was suspended.
func (controller *Controller) Resume() {
	controller.timer.Recompute()
}

// Status returns the current timer state.
func (controller *Controller) Status() timekeeper.Status {
	return controller.timer.Status()
}

// Settings returns the configured session lengths in minutes.
func (controller *Controller) Settings() model.Settings {
	status := controller.timer.Status()
	return model.SettingsFromConfig(model.TimerConfig{
		Focus: status.FocusDuration,
		Break: status.BreakDuration,
	})
}

// FormatRemaining renders a duration as MM:SS.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

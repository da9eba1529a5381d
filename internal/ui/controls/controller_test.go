package controls

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tomato/internal/core/model"
	"tomato/internal/core/timekeeper"
)

type recordingTimer struct {
	status     timekeeper.Status
	calls      []string
	adjusts    []time.Duration
	configured []model.TimerConfig
}

func (timer *recordingTimer) Start() {
	timer.calls = append(timer.calls, "start")
	timer.status.Active = true
}

func (timer *recordingTimer) Stop() {
	timer.calls = append(timer.calls, "stop")
	timer.status.Active = false
}

func (timer *recordingTimer) Reset()     { timer.calls = append(timer.calls, "reset") }
func (timer *recordingTimer) Recompute() { timer.calls = append(timer.calls, "recompute") }

func (timer *recordingTimer) AdjustBy(delta time.Duration) {
	timer.adjusts = append(timer.adjusts, delta)
}

func (timer *recordingTimer) Configure(config model.TimerConfig) {
	timer.calls = append(timer.calls, "configure")
	timer.configured = append(timer.configured, config)
	timer.status.FocusDuration = config.Focus
	timer.status.BreakDuration = config.Break
}

func (timer *recordingTimer) Status() timekeeper.Status {
	return timer.status
}

func TestToggleAlternatesStartAndStop(t *testing.T) {
	timer := &recordingTimer{}
	controller := New(timer)

	controller.Toggle()
	controller.Toggle()
	controller.Toggle()

	assert.Equal(t, []string{"start", "stop", "start"}, timer.calls)
}

func TestCrownMapsSignToOneSecond(t *testing.T) {
	timer := &recordingTimer{}
	controller := New(timer)

	controller.Crown(0.25)
	controller.Crown(37)
	controller.Crown(-0.01)
	controller.Crown(0)

	assert.Equal(t, []time.Duration{time.Second, time.Second, -time.Second}, timer.adjusts)
}

func TestSaveSettingsValidatesAndConfigures(t *testing.T) {
	tests := []struct {
		name     string
		settings model.Settings
		wantErr  error
	}{
		{name: "valid", settings: model.Settings{FocusMinutes: 30, BreakMinutes: 10}},
		{name: "zero break", settings: model.Settings{FocusMinutes: 30, BreakMinutes: 0}},
		{name: "zero focus", settings: model.Settings{FocusMinutes: 0, BreakMinutes: 10}, wantErr: model.ErrFocusRequired},
		{name: "out of range", settings: model.Settings{FocusMinutes: 61, BreakMinutes: 10}, wantErr: model.ErrMinutesOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := &recordingTimer{}
			controller := New(timer)

			err := controller.SaveSettings(tt.settings)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, timer.configured)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []model.TimerConfig{tt.settings.TimerConfig()}, timer.configured)
			assert.Equal(t, tt.settings, controller.Settings())
		})
	}
}

func TestConfirmResetAndResume(t *testing.T) {
	timer := &recordingTimer{}
	controller := New(timer)

	controller.ConfirmReset()
	controller.Resume()

	assert.Equal(t, []string{"reset", "recompute"}, timer.calls)
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 25 * time.Minute, want: "25:00"},
		{in: 299 * time.Second, want: "04:59"},
		{in: 0, want: "00:00"},
		{in: -time.Second, want: "00:00"},
		{in: 60 * time.Minute, want: "60:00"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.in); got != tt.want {
			t.Fatalf("FormatRemaining(%v) = %q want %q", tt.in, got, tt.want)
		}
	}
}

package timekeeper

import "time"

// Session identifies the kind of interval being timed.
type Session string

const (
	SessionWork  Session = "work"
	SessionBreak Session = "break"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventProgress      EventType = "progress"
	EventAdjust        EventType = "adjust"
	EventSessionSwitch EventType = "session_switch"
)

// Status is a point-in-time view of the timer.
type Status struct {
	Session       Session
	Active        bool
	Remaining     time.Duration
	EndAt         time.Time
	FocusDuration time.Duration
	BreakDuration time.Duration
}

// IsWorkSession reports whether the current session is a focus session.
func (status Status) IsWorkSession() bool {
	return status.Session == SessionWork
}

// FullDuration returns the configured length of the current session.
func (status Status) FullDuration() time.Duration {
	if status.Session == SessionWork {
		return status.FocusDuration
	}
	return status.BreakDuration
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type EventType
	Status
	At time.Time
}

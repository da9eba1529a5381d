package timekeeper

import "time"

// Notifier schedules the alert shown when a session ends.
type Notifier interface {
	ScheduleOneShot(fireAt time.Time, title, body string) (string, error)
	// CancelAll must be safe to call when nothing is scheduled.
	CancelAll()
}

type noopNotifier struct{}

func (noopNotifier) ScheduleOneShot(time.Time, string, string) (string, error) {
	return "", nil
}

func (noopNotifier) CancelAll() {}

func notificationContent(session Session) (title, body string) {
	if session == SessionWork {
		return "Break Time!", "Your focus session has ended. Time for a break!"
	}
	return "Focus Session Started", "Break is over. Time to focus!"
}

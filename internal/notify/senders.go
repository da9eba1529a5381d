package notify

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
)

// FyneSender shows desktop notifications through a fyne application.
type FyneSender struct {
	app fyne.App
}

// NewFyneSender creates a sender bound to app.
func NewFyneSender(app fyne.App) *FyneSender {
	return &FyneSender{app: app}
}

// Send posts the notification on the UI goroutine.
func (sender *FyneSender) Send(title, body string) error {
	if sender.app == nil {
		return fmt.Errorf("send notification: no application")
	}
	notification := fyne.NewNotification(title, body)
	fyne.Do(func() {
		sender.app.SendNotification(notification)
	})
	return nil
}

// WriterSender prints notifications as a line, optionally ringing the
// terminal bell.
type WriterSender struct {
	Out  io.Writer
	Bell bool
}

// Send writes "title: body".
func (sender WriterSender) Send(title, body string) error {
	prefix := ""
	if sender.Bell {
		prefix = "\a"
	}
	if _, err := fmt.Fprintf(sender.Out, "%s%s: %s\n", prefix, title, body); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}

// LogSender only records notifications in the log.
type LogSender struct {
	Logger zerolog.Logger
}

// Send logs the notification.
func (sender LogSender) Send(title, body string) error {
	sender.Logger.Info().Str("title", title).Str("body", body).Msg("notification")
	return nil
}

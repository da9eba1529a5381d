// Package term is a line-oriented terminal presentation of the timer.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"tomato/internal/core/model"
	"tomato/internal/core/timekeeper"
	xlog "tomato/internal/log"
	"tomato/internal/ui/controls"
)

const helpText = `commands:
  t, <enter>  start or stop
  r           reset (asks for confirmation)
  +[n], -[n]  nudge the running timer by n seconds
  e F B       set focus and break minutes
  s           status
  q           quit
`

// ErrBadCommand reports input the UI cannot interpret.
var ErrBadCommand = errors.New("bad command")

// UI reads commands from in and writes to out.
type UI struct {
	in         io.Reader
	controller *controls.Controller
	logger     zerolog.Logger

	mu  sync.Mutex
	out io.Writer
}

// New creates a terminal UI.
func New(in io.Reader, out io.Writer, controller *controls.Controller) *UI {
	return &UI{
		in:         in,
		out:        out,
		controller: controller,
		logger:     xlog.WithComponent("term"),
	}
}

// Run processes commands until q, end of input, or ctx is done.
func (ui *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(ui.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	next := func() (string, bool) {
		select {
		case <-ctx.Done():
			return "", false
		case line, ok := <-lines:
			return strings.TrimSpace(line), ok
		}
	}

	ui.printf(helpText)
	ui.printStatus()
	for {
		line, ok := next()
		if !ok {
			break
		}
		quit, err := ui.handle(line, next)
		if err != nil {
			ui.printf("%v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}

	select {
	case err := <-scanErr:
		if err != nil {
			return fmt.Errorf("read commands: %w", err)
		}
	default:
	}
	return nil
}

// Watch prints session switches and state changes until events is closed.
func (ui *UI) Watch(events <-chan timekeeper.Event) {
	for event := range events {
		switch event.Type {
		case timekeeper.EventSessionSwitch:
			ui.printf("%s\n", sessionBanner(event.Status))
			ui.printLine(event.Status)
		case timekeeper.EventStateChange:
			ui.printLine(event.Status)
		}
	}
}

func (ui *UI) handle(line string, next func() (string, bool)) (bool, error) {
	if line == "" {
		ui.controller.Toggle()
		ui.printStatus()
		return false, nil
	}

	fields := strings.Fields(line)
	switch command := fields[0]; {
	case command == "t":
		ui.controller.Toggle()
		ui.printStatus()
	case command == "r":
		ui.printf("End Pomodoro? [y/N] ")
		answer, ok := next()
		if !ok {
			return true, nil
		}
		if answer = strings.ToLower(answer); answer == "y" || answer == "yes" {
			ui.controller.ConfirmReset()
			ui.printf("Bye\n")
		}
		ui.printStatus()
	case command == "s":
		ui.printStatus()
	case command == "q":
		return true, nil
	case command == "h" || command == "?":
		ui.printf(helpText)
	case command == "e":
		settings, err := parseSettings(fields[1:])
		if err != nil {
			return false, err
		}
		if err := ui.controller.SaveSettings(settings); err != nil {
			return false, fmt.Errorf("save settings: %w", err)
		}
		ui.printStatus()
	case strings.HasPrefix(command, "+") || strings.HasPrefix(command, "-"):
		units, err := parseCrown(command)
		if err != nil {
			return false, err
		}
		ui.crown(units)
		ui.printStatus()
	default:
		return false, fmt.Errorf("%w: %q (h for help)", ErrBadCommand, line)
	}
	return false, nil
}

func (ui *UI) crown(units int) {
	delta := 1.0
	if units < 0 {
		delta = -1
		units = -units
	}
	for i := 0; i < units; i++ {
		ui.controller.Crown(delta)
	}
}

func (ui *UI) printStatus() {
	ui.printLine(ui.controller.Status())
}

func (ui *UI) printLine(status timekeeper.Status) {
	ui.printf("%s\n", FormatStatus(status))
}

func (ui *UI) printf(format string, args ...any) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if _, err := fmt.Fprintf(ui.out, format, args...); err != nil {
		ui.logger.Debug().Err(err).Msg("write terminal output")
	}
}

// FormatStatus renders a one line summary of the timer.
func FormatStatus(status timekeeper.Status) string {
	line := fmt.Sprintf("[%s] %s", status.Session, controls.FormatRemaining(status.Remaining))
	if status.Active {
		return line + " running"
	}
	return fmt.Sprintf("%s idle (%d min break)", line, int(status.BreakDuration.Minutes()))
}

func sessionBanner(status timekeeper.Status) string {
	if status.IsWorkSession() {
		return "Focus Session Started"
	}
	return "Break Time!"
}

func parseCrown(command string) (int, error) {
	sign := 1
	if command[0] == '-' {
		sign = -1
	}
	digits := command[1:]
	if digits == "" {
		return sign, nil
	}
	units, err := strconv.Atoi(digits)
	if err != nil || units <= 0 {
		return 0, fmt.Errorf("%w: crown units %q", ErrBadCommand, command)
	}
	return sign * units, nil
}

func parseSettings(args []string) (model.Settings, error) {
	if len(args) != 2 {
		return model.Settings{}, fmt.Errorf("%w: usage e FOCUS BREAK", ErrBadCommand)
	}
	focus, err := strconv.Atoi(args[0])
	if err != nil {
		return model.Settings{}, fmt.Errorf("%w: focus minutes %q", ErrBadCommand, args[0])
	}
	breakMinutes, err := strconv.Atoi(args[1])
	if err != nil {
		return model.Settings{}, fmt.Errorf("%w: break minutes %q", ErrBadCommand, args[1])
	}
	return model.Settings{FocusMinutes: focus, BreakMinutes: breakMinutes}, nil
}

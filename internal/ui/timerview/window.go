// Package timerview is the main countdown window of the desktop timer.
package timerview

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tomato/internal/core/timekeeper"
	"tomato/internal/ui/animation"
	"tomato/internal/ui/controls"
)

// Config defines window visuals.
type Config struct {
	Title     string
	Animation animation.Config
}

// Window shows the countdown and forwards input to the controller.
type Window struct {
	window      fyne.Window
	controller  *controls.Controller
	label       *crownLabel
	caption     *widget.Label
	gradient    *canvas.RadialGradient
	resetButton *widget.Button
	editButton  *widget.Button
	actions     *fyne.Container
	engine      *animation.Engine
	confirm     *dialog.ConfirmDialog
	onEdit      func()
	active      bool
	animating   bool
}

// New creates the countdown window. onEdit opens the settings editor.
func New(app fyne.App, config Config, controller *controls.Controller, onEdit func()) *Window {
	if config.Title == "" {
		config.Title = "tomato"
	}
	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:     window,
		controller: controller,
		onEdit:     onEdit,
	}

	palette := config.Animation.Colors
	if len(palette) == 0 {
		palette = animation.Palette
	}
	view.gradient = canvas.NewRadialGradient(palette[0], palette[len(palette)-1])
	view.gradient.Hide()
	view.engine = animation.New(config.Animation, view.applyFrame)

	view.label = newCrownLabel(controller.Toggle, controller.Crown)
	view.caption = widget.NewLabel("")
	view.caption.Alignment = fyne.TextAlignTrailing
	view.caption.Importance = widget.LowImportance

	view.resetButton = widget.NewButtonWithIcon("", theme.CancelIcon(), view.AskReset)
	view.editButton = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		if view.onEdit != nil {
			view.onEdit()
		}
	})
	view.actions = container.NewHBox(layout.NewSpacer(), view.resetButton, view.editButton, layout.NewSpacer())

	content := container.NewVBox(
		view.caption,
		layout.NewSpacer(),
		view.label,
		layout.NewSpacer(),
		view.actions,
	)
	window.SetContent(container.NewStack(view.gradient, container.NewPadded(content)))
	window.Canvas().SetOnTypedKey(view.typedKey)
	window.Resize(fyne.NewSize(260, 220))

	view.Render(controller.Status())
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// SetCloseIntercept sets the close handler of the underlying window.
func (view *Window) SetCloseIntercept(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// Update renders status from any goroutine.
func (view *Window) Update(status timekeeper.Status) {
	fyne.Do(func() {
		view.Render(status)
	})
}

// Render refreshes the window. Must run on the UI goroutine.
func (view *Window) Render(status timekeeper.Status) {
	view.label.SetText(controls.FormatRemaining(status.Remaining))
	if status.Active != view.active {
		view.active = status.Active
		view.label.setActive(status.Active)
	}

	if status.Active {
		view.caption.Hide()
		view.actions.Hide()
		view.startAnimation()
		return
	}
	view.caption.SetText(fmt.Sprintf("%d min break", int(status.BreakDuration.Minutes())))
	view.caption.Show()
	view.actions.Show()
	view.stopAnimation()
}

// Hide hides the window and pauses the animation.
func (view *Window) Hide() {
	view.stopAnimation()
	view.window.Hide()
}

// Close stops the animation and closes the window.
func (view *Window) Close() {
	view.stopAnimation()
	view.window.Close()
}

func (view *Window) typedKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		view.controller.Toggle()
	case fyne.KeyUp:
		view.controller.Crown(1)
	case fyne.KeyDown:
		view.controller.Crown(-1)
	}
}

// AskReset brings the window forward and asks before resetting the timer.
func (view *Window) AskReset() {
	view.Show()
	confirm := dialog.NewCustomConfirm("End Pomodoro?", "Bye", "Cancel",
		widget.NewLabel("The current session will be reset."),
		func(confirmed bool) {
			if confirmed {
				view.controller.ConfirmReset()
			}
		}, view.window)
	if view.confirm != nil {
		view.confirm.Hide()
	}
	view.confirm = confirm
	view.confirm.SetConfirmImportance(widget.DangerImportance)
	view.confirm.Show()
}

func (view *Window) startAnimation() {
	if view.animating {
		return
	}
	view.animating = true
	view.gradient.Show()
	view.engine.Start(context.Background())
}

func (view *Window) stopAnimation() {
	if !view.animating {
		return
	}
	view.animating = false
	view.engine.Stop()
	view.gradient.Hide()
}

func (view *Window) applyFrame(frame animation.Frame) {
	fyne.Do(func() {
		view.gradient.CenterOffsetX, view.gradient.CenterOffsetY = frame.Center.Offset()
		view.gradient.StartColor = frame.StartColor
		view.gradient.EndColor = frame.EndColor
		view.gradient.Refresh()
	})
}

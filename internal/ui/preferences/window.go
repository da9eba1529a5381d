// Package preferences is the "Edit Timer" window with the focus and break
// pickers.
package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"tomato/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   model.Settings
	onSave     func(model.Settings) error
	focus      *widget.Select
	breakTime  *widget.Select
	saveButton *widget.Button
}

// New creates a preferences window. onSave may reject the settings, in
// which case the window stays open and shows the error.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings) error) *Window {
	window := app.NewWindow("Edit Timer")

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
	}

	prefs.focus = widget.NewSelect(minuteOptions(), func(string) { prefs.refreshSave() })
	prefs.breakTime = widget.NewSelect(minuteOptions(), func(string) { prefs.refreshSave() })
	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	prefs.saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Hide)

	form := widget.NewForm(
		widget.NewFormItem("Focus Time", prefs.focus),
		widget.NewFormItem("Break Time", prefs.breakTime),
	)
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), prefs.saveButton)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(320, 180))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.focus.SetSelected(minuteLabel(settings.FocusMinutes))
	prefs.breakTime.SetSelected(minuteLabel(settings.BreakMinutes))
	prefs.refreshSave()
}

// Selected returns the settings currently picked.
func (prefs *Window) Selected() model.Settings {
	return model.Settings{
		FocusMinutes: parseMinuteLabel(prefs.focus.Selected),
		BreakMinutes: parseMinuteLabel(prefs.breakTime.Selected),
	}
}

func (prefs *Window) refreshSave() {
	if prefs.saveButton == nil {
		return
	}
	if prefs.Selected().CanSave() {
		prefs.saveButton.Enable()
		return
	}
	prefs.saveButton.Disable()
}

func (prefs *Window) handleSave() {
	settings := prefs.Selected()
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}

func minuteOptions() []string {
	options := make([]string, 0, model.MaxMinutes-model.MinMinutes+1)
	for minutes := model.MinMinutes; minutes <= model.MaxMinutes; minutes++ {
		options = append(options, minuteLabel(minutes))
	}
	return options
}

func minuteLabel(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}

func parseMinuteLabel(label string) int {
	minutes, err := strconv.Atoi(strings.TrimSuffix(label, " min"))
	if err != nil {
		return 0
	}
	return minutes
}

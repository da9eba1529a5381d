package timerview

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// crownLabel is the countdown text. Tapping toggles the timer and the
// mouse wheel stands in for the watch crown.
type crownLabel struct {
	widget.Label
	onTap    func()
	onScroll func(delta float64)
}

func newCrownLabel(onTap func(), onScroll func(float64)) *crownLabel {
	label := &crownLabel{onTap: onTap, onScroll: onScroll}
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Monospace: true}
	label.SizeName = theme.SizeNameHeadingText
	label.ExtendBaseWidget(label)
	return label
}

func (label *crownLabel) Tapped(*fyne.PointEvent) {
	if label.onTap != nil {
		label.onTap()
	}
}

func (label *crownLabel) Scrolled(event *fyne.ScrollEvent) {
	if label.onScroll != nil {
		label.onScroll(float64(event.Scrolled.DY))
	}
}

// setActive highlights the countdown while the timer runs.
func (label *crownLabel) setActive(active bool) {
	if active {
		label.Importance = widget.HighImportance
	} else {
		label.Importance = widget.MediumImportance
	}
	label.Refresh()
}

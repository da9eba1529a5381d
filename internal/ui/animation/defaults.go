package animation

import (
	"image/color"
	"time"
)

// Palette is the breathing gradient color cycle.
var Palette = []color.Color{
	color.NRGBA{R: 0x0a, G: 0x84, B: 0xff, A: 0xff}, // blue
	color.NRGBA{R: 0xbf, G: 0x5a, B: 0xf2, A: 0xff}, // purple
	color.NRGBA{R: 0xff, G: 0x37, B: 0x5f, A: 0xff}, // pink
	color.NRGBA{R: 0xff, G: 0x45, B: 0x3a, A: 0xff}, // red
	color.NRGBA{R: 0xff, G: 0xd6, B: 0x0a, A: 0xff}, // yellow
}

// DefaultConfig returns the breathing gradient timing.
func DefaultConfig() Config {
	return Config{
		MoveInterval: Range{
			Min: 3 * time.Second,
			Max: 3 * time.Second,
		},
		EaseDuration:  time.Second,
		FrameInterval: 33 * time.Millisecond,
		Opacity:       0.8,
		Colors:        Palette,
	}
}

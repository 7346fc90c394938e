// Package web runs Gift Runner in the browser with Ebitengine.
//
// The driver itself only builds for js/wasm; the helpers in this file and
// name.go are plain Go so they can be tested anywhere.
package web

import (
	"image/color"

	"github.com/vovakirdan/gift-runner/internal/core"
)

// palette maps core.Color to canvas colors.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:      {0xe0, 0xe0, 0xe0, 0xff},
	core.ColorRed:          {0xd6, 0x28, 0x28, 0xff},
	core.ColorGreen:        {0x2e, 0x7d, 0x32, 0xff},
	core.ColorYellow:       {0xf9, 0xa8, 0x25, 0xff},
	core.ColorBlue:         {0x15, 0x65, 0xc0, 0xff},
	core.ColorMagenta:      {0x8e, 0x24, 0xaa, 0xff},
	core.ColorCyan:         {0x00, 0x83, 0x8f, 0xff},
	core.ColorWhite:        {0xee, 0xee, 0xee, 0xff},
	core.ColorBrightRed:    {0xff, 0x52, 0x52, 0xff},
	core.ColorBrightGreen:  {0x66, 0xbb, 0x6a, 0xff},
	core.ColorBrightYellow: {0xff, 0xeb, 0x3b, 0xff},
	core.ColorBrightWhite:  {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:       {0xff, 0x8f, 0x00, 0xff},
	core.ColorGray:         {0x9e, 0x9e, 0x9e, 0xff},
}

// Background colors of the night sky and the snow ground.
var (
	skyColor    = color.RGBA{0x0d, 0x1b, 0x2a, 0xff}
	groundColor = color.RGBA{0xf5, 0xf7, 0xfa, 0xff}
)

// RGBA returns the canvas color for c, falling back to the default color.
func RGBA(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}

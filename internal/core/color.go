package core

import (
	"image/color"
	"strconv"
)

// Color is a "#RRGGBB" hex color shared by the terminal and desktop surfaces.
type Color string

// Palette used by the breakout bodies.
const (
	ColorDefault    Color = ""
	ColorBackground Color = "#CCE1FF"
	ColorBall       Color = "#FF1414"
	ColorPaddle     Color = "#FFA600"
	ColorBrick      Color = "#FFFF00"
	ColorBorder     Color = "#555555"
	ColorText       Color = "#555555"
)

// RGBA parses the hex color. Malformed or empty colors yield opaque black.
func (c Color) RGBA() color.RGBA {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{A: 0xff}
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{
		R: uint8(n >> 16), //#nosec G115 -- masked by shift width
		G: uint8(n >> 8),  //#nosec G115 -- truncation intended
		B: uint8(n),       //#nosec G115 -- truncation intended
		A: 0xff,
	}
}

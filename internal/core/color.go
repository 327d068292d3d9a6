package core

import "image/color"

// Color is a palette index shared by every rendering backend.
// The terminal maps it to ANSI 256-color codes, the window backend to RGBA.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorCourt
)

var palette = [...]color.RGBA{
	ColorDefault:       {0xdd, 0xdd, 0xdd, 0xff},
	ColorBlack:         {0x10, 0x10, 0x14, 0xff},
	ColorRed:           {0xc0, 0x30, 0x30, 0xff},
	ColorGreen:         {0x30, 0xa0, 0x40, 0xff},
	ColorYellow:        {0xc8, 0xb0, 0x30, 0xff},
	ColorBlue:          {0x30, 0x50, 0xc0, 0xff},
	ColorMagenta:       {0xa0, 0x30, 0xa0, 0xff},
	ColorCyan:          {0x30, 0xa0, 0xb0, 0xff},
	ColorWhite:         {0xe0, 0xe0, 0xe0, 0xff},
	ColorBrightRed:     {0xff, 0x55, 0x55, 0xff},
	ColorBrightGreen:   {0x55, 0xff, 0x70, 0xff},
	ColorBrightYellow:  {0xff, 0xf0, 0x60, 0xff},
	ColorBrightBlue:    {0x60, 0x90, 0xff, 0xff},
	ColorBrightMagenta: {0xff, 0x66, 0xff, 0xff},
	ColorBrightCyan:    {0x66, 0xff, 0xff, 0xff},
	ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	ColorOrange:        {0xff, 0x8c, 0x1a, 0xff},
	ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
	ColorDarkGray:      {0x3a, 0x3a, 0x40, 0xff},
	ColorCourt:         {0x2f, 0x6e, 0x4a, 0xff},
}

// PaletteSize is the number of defined colors.
func PaletteSize() int {
	return len(palette)
}

// RGBA returns the color's value for pixel backends.
// Unknown indexes fall back to ColorDefault.
func (c Color) RGBA() color.RGBA {
	if int(c) >= len(palette) {
		return palette[ColorDefault]
	}
	return palette[c]
}

// Lerp blends two palette colors in RGBA space. t is clamped to [0, 1].
func Lerp(a, b Color, t float64) color.RGBA {
	t = ClampF(t, 0, 1)
	ca, cb := a.RGBA(), b.RGBA()
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{mix(ca.R, cb.R), mix(ca.G, cb.G), mix(ca.B, cb.B), 0xff}
}

package core

import "fmt"

// Color is a 24-bit foreground color for a screen cell.
// The zero value means "terminal default".
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB builds a truecolor value.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale darkens (f < 1) or brightens (f > 1) the color, saturating at 255.
func (c Color) Scale(f float64) Color {
	if !c.Valid {
		return c
	}
	ch := func(v uint8) uint8 {
		return uint8(ClampF(float64(v)*f, 0, 255))
	}
	return RGB(ch(c.R), ch(c.G), ch(c.B))
}

// Predefined colors for HUD elements.
var (
	ColorDefault = Color{}
	ColorWhite   = RGB(0xee, 0xee, 0xee)
	ColorGray    = RGB(0x8a, 0x8a, 0x8a)
	ColorYellow  = RGB(0xff, 0xd7, 0x00)
	ColorRed     = RGB(0xff, 0x5f, 0x5f)
	ColorCyan    = RGB(0x5f, 0xd7, 0xff)
)

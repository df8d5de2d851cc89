package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-stack/internal/core"
)

// Theme transforms the base block palette in HCL space.
type Theme struct {
	Name      string
	HueShift  float64 // degrees
	Chroma    float64 // chroma multiplier
	Lightness float64 // lightness multiplier
}

// Built-in themes.
var (
	ClassicTheme = Theme{Name: "classic", Chroma: 1, Lightness: 1}
	PastelTheme  = Theme{Name: "pastel", Chroma: 0.55, Lightness: 1.08}
	NeonTheme    = Theme{Name: "neon", HueShift: 40, Chroma: 1.6, Lightness: 0.9}
	MonoTheme    = Theme{Name: "mono", Chroma: 0, Lightness: 1}
)

// Themes lists the built-in themes.
func Themes() []Theme {
	return []Theme{ClassicTheme, PastelTheme, NeonTheme, MonoTheme}
}

// ThemeByName looks up a built-in theme. An empty name selects classic.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return ClassicTheme, nil
	}
	for _, t := range Themes() {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("sim: unknown theme %q", name)
}

func (t Theme) identity() bool {
	return t.HueShift == 0 && t.Chroma == 1 && t.Lightness == 1
}

// ColorFor returns the color of the block at index in a run whose foundation
// drew seed. Neighbouring indices drift smoothly around the palette.
func ColorFor(index, seed int, theme Theme) core.Color {
	offset := float64(index + seed)
	base := colorful.Color{
		R: (math.Sin(0.3*offset)*55 + 200) / 255,
		G: (math.Sin(0.3*offset+2)*55 + 200) / 255,
		B: (math.Sin(0.3*offset+4)*55 + 200) / 255,
	}

	if !theme.identity() {
		h, c, l := base.Hcl()
		h = math.Mod(h+theme.HueShift+360, 360)
		c *= theme.Chroma
		l = core.ClampF(l*theme.Lightness, 0, 1)
		base = colorful.Hcl(h, c, l).Clamped()
	}

	r, g, b := base.RGB255()
	return core.RGB(r, g, b)
}

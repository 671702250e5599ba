// Package theme provides color themes for the TUI.
package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Handle      lipgloss.Color
	Drag        lipgloss.Color
	Today       lipgloss.Color

	// Bar backgrounds, indexed by row shade.
	BarBg         [2]lipgloss.Color
	BarSelectedBg [2]lipgloss.Color
	DragBg        lipgloss.Color

	// Month bands alternate behind the label row.
	BandBg [2]lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnBar    [2]lipgloss.Color
	TextOnDrag   lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)
	barHex := barBg(t.Bar, t.Bg, isLight)
	barAltHex := barBg(t.BarAlt, t.Bg, isLight)
	dragHex := barBg(t.Drag, t.Bg, isLight)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Handle:      lipgloss.Color(t.Handle),
		Drag:        lipgloss.Color(t.Drag),
		Today:       lipgloss.Color(t.Today),

		BarBg: [2]lipgloss.Color{
			lipgloss.Color(barHex),
			lipgloss.Color(barAltHex),
		},
		BarSelectedBg: [2]lipgloss.Color{
			lipgloss.Color(alternateShade(barHex, isLight)),
			lipgloss.Color(alternateShade(barAltHex, isLight)),
		},
		DragBg: lipgloss.Color(dragHex),

		BandBg: [2]lipgloss.Color{
			lipgloss.Color(t.BgHighlight),
			lipgloss.Color(alternateShade(t.BgHighlight, isLight)),
		},

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnBar: [2]lipgloss.Color{
			lipgloss.Color(chooseTextColor(barHex, t.Bg, t.Fg)),
			lipgloss.Color(chooseTextColor(barAltHex, t.Bg, t.Fg)),
		},
		TextOnDrag: lipgloss.Color(chooseTextColor(dragHex, t.Bg, t.Fg)),
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// barBg softens a bar color so titles stay readable on top of it.
func barBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.6)
	}
	return darkenColor(accent)
}

// darkenColor halves a color's brightness for use behind text, keeping
// each channel at or above a floor so bars stay visible on dark themes.
func darkenColor(hex string) string {
	c, ok := parseColor(hex)
	if !ok {
		return hex
	}

	const floor = 40.0 / 255
	return colorful.Color{
		R: math.Max(c.R*0.5, floor),
		G: math.Max(c.G*0.5, floor),
		B: math.Max(c.B*0.5, floor),
	}.Hex()
}

// alternateShade lifts a color slightly, for selection and banding.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// relativeLuminance is the WCAG luminance of a hex color, 0 when the color
// does not parse.
func relativeLuminance(hex string) float64 {
	c, ok := parseColor(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes b into a by ratio in RGB space. Unparseable input
// returns a unchanged.
func blendColors(a, b string, ratio float64) string {
	ca, ok := parseColor(a)
	if !ok {
		return a
	}
	cb, ok := parseColor(b)
	if !ok {
		return a
	}
	return ca.BlendRgb(cb, math.Max(0, math.Min(1, ratio))).Clamped().Hex()
}

// parseColor accepts only full #rrggbb colors.
func parseColor(hex string) (colorful.Color, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

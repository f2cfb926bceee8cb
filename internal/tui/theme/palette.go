package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Free        lipgloss.Color
	Booked      lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	// Cell backgrounds for the slot grid.
	FreeBg     lipgloss.Color
	BookedBg   lipgloss.Color
	PastBg     lipgloss.Color
	BookedPast lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color
	TextOnBooked  lipgloss.Color
	TextOnFree    lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg       lipgloss.Color
	Border   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Panel    lipgloss.Color
	Backdrop lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := IsLight(t)
	freeBg := cellBg(t.Free, t.Bg, light)
	bookedBg := cellBg(t.Booked, t.Bg, light)
	mp := t.Modal()

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Free:        lipgloss.Color(t.Free),
		Booked:      lipgloss.Color(t.Booked),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		FreeBg:     lipgloss.Color(freeBg),
		BookedBg:   lipgloss.Color(bookedBg),
		PastBg:     lipgloss.Color(blendColors(t.BgHighlight, t.Bg, 0.5)),
		BookedPast: lipgloss.Color(blendColors(bookedBg, t.Bg, 0.6)),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
		TextOnBooked:  lipgloss.Color(chooseTextColor(bookedBg, t.Fg, t.Bg)),
		TextOnFree:    lipgloss.Color(chooseTextColor(freeBg, t.Fg, t.Bg)),

		Modal: ModalColors{
			Bg:       lipgloss.Color(mp.BaseBg),
			Border:   lipgloss.Color(mp.ModalBorder),
			Text:     lipgloss.Color(mp.TextPrimary),
			Muted:    lipgloss.Color(mp.TextMuted),
			Panel:    lipgloss.Color(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
			Backdrop: lipgloss.Color(coalesce(t.BgHighlight, t.Bg)),
		},
	}
}

// IsLight reports whether the theme has a light background.
func IsLight(t *Theme) bool {
	return relativeLuminance(t.Bg) > 0.55
}

// cellBg derives a slot background from an accent: a pale tint on light
// themes, a darkened shade on dark ones.
func cellBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

// darkenColor halves the brightness of a hex color, keeping a floor so the
// result stays visible on dark backgrounds.
func darkenColor(hex string) string {
	r, g, b, ok := splitHex(hex)
	if !ok {
		return hex
	}
	const floor = 40
	scale := func(v int) int {
		return max(int(float64(v)*0.5), floor)
	}
	return formatHexColor(scale(r), scale(g), scale(b))
}

func splitHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return r, g, b, true
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	return string([]byte{'#',
		hex[r>>4], hex[r&0xf],
		hex[g>>4], hex[g&0xf],
		hex[b>>4], hex[b&0xf],
	})
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := splitHex(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors mixes a towards b by ratio (0 keeps a, 1 yields b).
func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := splitHex(a)
	br, bg, bb, okB := splitHex(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DayChip is one entry of the day strip.
type DayChip struct {
	Label    string // "Hoy", "Vie, 19 Sept"
	Count    int    // scheduled appointments
	Closed   bool
	Selected bool
	Today    bool
}

// DayStripStyles groups the styles used by the day strip.
type DayStripStyles struct {
	Chip     lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Closed   lipgloss.Style
	Sep      lipgloss.Style
}

// RenderDayStrip renders the horizontal list of days, scrolled so the
// selected chip stays visible within width cells.
func RenderDayStrip(chips []DayChip, width int, styles DayStripStyles) string {
	if len(chips) == 0 || width <= 0 {
		return ""
	}

	rendered := make([]string, len(chips))
	selected := 0
	for i, c := range chips {
		rendered[i] = renderChip(c, styles)
		if c.Selected {
			selected = i
		}
	}

	sep := styles.Sep.Render(" ")
	sepW := lipgloss.Width(sep)

	// Grow a window around the selected chip until it no longer fits.
	from, to := selected, selected+1
	used := lipgloss.Width(rendered[selected])
	for {
		grew := false
		if to < len(rendered) && used+sepW+lipgloss.Width(rendered[to]) <= width {
			used += sepW + lipgloss.Width(rendered[to])
			to++
			grew = true
		}
		if from > 0 && used+sepW+lipgloss.Width(rendered[from-1]) <= width {
			from--
			used += sepW + lipgloss.Width(rendered[from])
			grew = true
		}
		if !grew {
			break
		}
	}

	return Truncate(strings.Join(rendered[from:to], sep), width)
}

func renderChip(c DayChip, styles DayStripStyles) string {
	text := c.Label
	if c.Count > 0 {
		text += " (" + strconv.Itoa(c.Count) + ")"
	}

	style := styles.Chip
	switch {
	case c.Selected:
		style = styles.Selected
	case c.Closed:
		style = styles.Closed
	case c.Today:
		style = styles.Today
	}
	return style.Render(text)
}

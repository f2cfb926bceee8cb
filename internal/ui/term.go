package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	// Free slots: green, ready to book
	colorFree = color.New(color.FgGreen)

	// Booked slots and appointments: bold cyan
	colorBooked = color.New(color.FgCyan, color.Bold)

	// Warnings such as the next free slot being days away
	colorWarn = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: past, closed, cancelled
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatFree(s string) string { return colorFree.Sprint(s) }
func formatBooked(s string) string { return colorBooked.Sprint(s) }
func formatWarn(s string) string { return colorWarn.Sprint(s) }
func formatHeader(s string) string { return colorHeader.Sprint(s) }
func formatMuted(s string) string { return colorMuted.Sprint(s) }

// padRight pads s with spaces to width terminal cells. Day labels carry
// accents ("Mié", "Sáb") so byte length is not display width.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// truncate cuts s to width cells, ending with "…" when shortened.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW      int
	LegendLine  string
	StatusLine  string
	HelpLine    string
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	Bg          lipgloss.Color
}

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 3

// RenderFooter renders legend, status and help lines, each cut to the inner width.
func RenderFooter(state FooterViewState) string {
	w := state.InnerW
	s := Truncate(state.LegendLine, w) + "\n" +
		state.StatusStyle.Render(Truncate(state.StatusLine, w)) + "\n" +
		state.HelpStyle.Render(Truncate(state.HelpLine, w))
	return PlaceBox(w, FooterHeight, lipgloss.Bottom, s, state.Bg)
}

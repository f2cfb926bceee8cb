// Package view provides rendering helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// ViewState contains pre-rendered content and modal metadata.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	ModalContent     string
	ShowModal        bool
	Backdrop         lipgloss.Color
	EmptyPlaceholder string
}

// Render composes the final view output. An open modal replaces the base
// content and is centered on the backdrop color.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Cargando..."
	}

	if state.ShowModal && state.ModalContent != "" {
		return lipgloss.Place(
			state.Width,
			state.Height,
			lipgloss.Center,
			lipgloss.Center,
			state.ModalContent,
			lipgloss.WithWhitespaceBackground(state.Backdrop),
		)
	}

	return state.BaseContent
}

package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent contains table rows and cell styles.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// TableViewState holds data needed to render the slot grid.
type TableViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	BorderStyle  lipgloss.Style
	Bg           lipgloss.Color
	Render       bool
}

// RenderTable renders the slot grid using a lipgloss table.
func RenderTable(state TableViewState) string {
	if !state.Render || state.GridH <= 0 || state.InnerW <= 0 {
		return ""
	}

	t := table.New().
		Headers(state.Headers...).
		Width(state.InnerW).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(state.Content.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col >= 0 && col < len(state.HeaderStyles) {
					return state.HeaderStyles[col]
				}
				return lipgloss.NewStyle()
			}
			if row < 0 || row >= len(state.Content.CellStyles) || col < 0 || col >= len(state.Content.CellStyles[row]) {
				return lipgloss.NewStyle()
			}
			return state.Content.CellStyles[row][col]
		})

	return PlaceBox(state.InnerW, state.GridH, lipgloss.Top, t.Render(), state.Bg)
}

// VisibleWindow returns the [from, to) range of rows to show so that cursor
// stays on screen when only height rows fit.
func VisibleWindow(total, cursor, height int) (from, to int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	from = cursor - height/2
	if from < 0 {
		from = 0
	}
	if from+height > total {
		from = total - height
	}
	return from, from + height
}

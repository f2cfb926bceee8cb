// Package tui provides the terminal user interface for turnogo.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/turnogo/turnogo/internal/tui/theme"
	"github.com/turnogo/turnogo/internal/tui/view"
)

// timeColumnWidth fits the widest grid label ("12AM", "10:05").
const timeColumnWidth = 6

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color
	colorBackdrop    lipgloss.Color

	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	// Slot grid
	HeaderCellStyle   lipgloss.Style
	TimeColumnStyle   lipgloss.Style
	FreeCellStyle     lipgloss.Style
	BookedCellStyle   lipgloss.Style
	PastCellStyle     lipgloss.Style
	PastBookedStyle   lipgloss.Style
	ClosedCellStyle   lipgloss.Style
	CursorStyle       lipgloss.Style
	CursorBookedStyle lipgloss.Style
	BorderStyle       lipgloss.Style

	// Footer
	LegendFreeStyle   lipgloss.Style
	LegendBookedStyle lipgloss.Style
	LegendPastStyle   lipgloss.Style
	StatusStyle       lipgloss.Style
	ErrorStyle        lipgloss.Style
	HelpStyle         lipgloss.Style

	DayStrip view.DayStripStyles
	Modal    view.ModalStyles

	// Form inputs
	ModalInputTextStyle   lipgloss.Style
	ModalInputCursorStyle lipgloss.Style
	ModalPlaceholderStyle lipgloss.Style
	ModalErrorStyle       lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		colorBg:          p.Bg,
		colorBgHighlight: p.BgHighlight,
		colorFg:          p.Fg,
		colorFgMuted:     p.FgMuted,
		colorAccent:      p.Accent,
		colorWarning:     p.Warning,
		colorBackdrop:    p.Modal.Backdrop,
	}

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s.TitleStyle = base.Bold(true).Foreground(p.Accent)
	s.SubtitleStyle = base.Foreground(p.FgMuted)

	s.HeaderCellStyle = base.Bold(true).Foreground(p.Accent).Padding(0, 1)
	s.TimeColumnStyle = base.Foreground(p.Accent).Width(timeColumnWidth).Padding(0, 1)

	cell := base.Padding(0, 1)
	s.FreeCellStyle = cell.Foreground(p.Free)
	s.BookedCellStyle = cell.Background(p.BookedBg).Foreground(p.TextOnBooked).Bold(true)
	s.PastCellStyle = cell.Foreground(p.FgMuted)
	s.PastBookedStyle = cell.Background(p.BookedPast).Foreground(p.FgMuted)
	s.ClosedCellStyle = cell.Foreground(p.FgMuted).Italic(true)
	s.CursorStyle = cell.Background(p.Accent).Foreground(p.TextOnAccent).Bold(true)
	s.CursorBookedStyle = cell.Background(p.Warning).Foreground(p.TextOnWarning).Bold(true)
	s.BorderStyle = lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg)

	s.LegendFreeStyle = base.Foreground(p.Free)
	s.LegendBookedStyle = base.Foreground(p.Booked)
	s.LegendPastStyle = base.Foreground(p.FgMuted)
	s.StatusStyle = base.Foreground(p.Fg)
	s.ErrorStyle = base.Foreground(p.Warning).Bold(true)
	s.HelpStyle = base.Foreground(p.FgMuted)

	s.DayStrip = view.DayStripStyles{
		Chip:     lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Fg).Padding(0, 1),
		Selected: lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true).Padding(0, 1),
		Today:    lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Today).Bold(true).Padding(0, 1),
		Closed:   lipgloss.NewStyle().Background(p.Bg).Foreground(p.FgMuted).Padding(0, 1),
		Sep:      lipgloss.NewStyle().Background(p.Bg),
	}

	modalBase := lipgloss.NewStyle().Background(p.Modal.Bg).Foreground(p.Modal.Text)
	s.Modal = view.ModalStyles{
		ModalStyle: modalBase.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Modal.Border).
			BorderBackground(p.Modal.Bg).
			Padding(1, 2),
		ModalTitleStyle:        modalBase.Bold(true).Foreground(p.Accent),
		ModalBodyStyle:         modalBase,
		ModalLabelStyle:        modalBase.Foreground(p.Modal.Muted),
		ModalHintStyle:         modalBase.Foreground(p.Modal.Muted),
		ModalButtonStyle:       lipgloss.NewStyle().Background(p.Modal.Panel).Foreground(p.Modal.Text).Padding(0, 2),
		ModalButtonActiveStyle: lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true).Padding(0, 2),
	}

	s.ModalInputTextStyle = modalBase
	s.ModalInputCursorStyle = lipgloss.NewStyle().Foreground(p.Accent)
	s.ModalPlaceholderStyle = modalBase.Foreground(p.Modal.Muted)
	s.ModalErrorStyle = modalBase.Foreground(p.Warning)

	s.AppStyle = lipgloss.NewStyle().Background(p.Bg)

	return s
}

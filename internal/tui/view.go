package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/dateutil"
	"github.com/turnogo/turnogo/internal/slots"
	"github.com/turnogo/turnogo/internal/tui/input"
	"github.com/turnogo/turnogo/internal/tui/view"
)

// Lines above the slot grid: title and day strip.
const headerHeight = 2

// Rows taken by the table frame: top border, header, header rule, bottom border.
const tableChrome = 4

const helpNormal = "h/l día · j/k hora · enter reservar/ver · c cancelar · n libre · t hoy · y copiar · r recargar · q salir"

// View renders the UI.
func (m Model) View() string {
	state := view.ViewState{
		Width:    m.width,
		Height:   m.height,
		Backdrop: m.styles.colorBackdrop,
	}
	if m.width == 0 || m.height == 0 {
		return view.Render(state)
	}

	state.BaseContent = m.renderBase()
	if m.mode == ModeModal {
		state.ShowModal = true
		state.ModalContent = m.renderModal()
	}
	return view.Render(state)
}

func (m Model) renderBase() string {
	gridH := max(m.height-headerHeight-view.FooterHeight, 0)
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		view.RenderDayStrip(m.dayChips(), m.width, m.styles.DayStrip),
		m.renderGrid(gridH),
		m.renderFooter(),
	)
	return view.PadLinesWithBackground(content, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	day := m.selectedDay()
	title := m.styles.TitleStyle.Render("TurnoGo")
	sub := fmt.Sprintf("  %s · %d citas", m.formatter.SelectedDate(day), len(m.scheduledOn(day)))
	if m.loading {
		sub += " · cargando…"
	}
	return view.Truncate(title+m.styles.SubtitleStyle.Render(sub), m.width)
}

func (m Model) dayChips() []view.DayChip {
	today := m.formatter.Today()
	chips := make([]view.DayChip, len(m.days))
	for i, d := range m.days {
		chips[i] = view.DayChip{
			Label:    m.formatter.SelectedDate(d),
			Count:    len(m.scheduledOn(d)),
			Closed:   !m.scheduler.IsWorkday(d),
			Selected: i == m.dayIdx,
			Today:    dateutil.IsSameDay(d, today),
		}
	}
	return chips
}

func (m Model) renderGrid(gridH int) string {
	ss := m.daySlots()
	from, to := view.VisibleWindow(len(ss), m.slotIdx, gridH-tableChrome)

	content := view.TableContent{
		Rows:       make([][]string, 0, to-from),
		CellStyles: make([][]lipgloss.Style, 0, to-from),
	}
	for i := from; i < to; i++ {
		label, state := m.slotCells(ss[i])
		timeStyle, stateStyle := m.slotStyles(ss[i], i == m.slotIdx)
		content.Rows = append(content.Rows, []string{label, state})
		content.CellStyles = append(content.CellStyles, []lipgloss.Style{timeStyle, stateStyle})
	}

	return view.RenderTable(view.TableViewState{
		InnerW:       m.width,
		GridH:        gridH,
		Headers:      []string{"Hora", "Estado"},
		HeaderStyles: []lipgloss.Style{m.styles.HeaderCellStyle, m.styles.HeaderCellStyle},
		Content:      content,
		BorderStyle:  m.styles.BorderStyle,
		Bg:           m.styles.colorBg,
		Render:       len(ss) > 0,
	})
}

// slotCells returns the time label and state text of a grid row. Only the
// first slot of an appointment names the client.
func (m Model) slotCells(s slots.Slot) (string, string) {
	switch s.Reason {
	case slots.ReasonNone:
		return s.Label, "libre"
	case slots.ReasonClosed:
		return s.Label, "cerrado"
	case slots.ReasonPast:
		return s.Label, "—"
	case slots.ReasonNoRoom:
		return s.Label, "no cabe"
	case slots.ReasonBooked:
		a := s.BookedBy
		if a == nil || a.Start != s.Start.String() {
			return s.Label, "┆"
		}
		text := a.Client
		if a.Service != "" {
			text += " · " + a.Service
		}
		return s.Label, fmt.Sprintf("%s (hasta %s)", text, a.End())
	default:
		return s.Label, ""
	}
}

func (m Model) slotStyles(s slots.Slot, cursor bool) (lipgloss.Style, lipgloss.Style) {
	if cursor {
		if s.Reason == slots.ReasonBooked {
			return m.styles.CursorBookedStyle, m.styles.CursorBookedStyle
		}
		return m.styles.CursorStyle, m.styles.CursorStyle
	}
	switch s.Reason {
	case slots.ReasonBooked:
		return m.styles.TimeColumnStyle, m.styles.BookedCellStyle
	case slots.ReasonPast:
		return m.styles.PastCellStyle, m.styles.PastCellStyle
	case slots.ReasonClosed, slots.ReasonNoRoom:
		return m.styles.ClosedCellStyle, m.styles.ClosedCellStyle
	default:
		return m.styles.TimeColumnStyle, m.styles.FreeCellStyle
	}
}

func (m Model) renderFooter() string {
	legend := m.styles.LegendFreeStyle.Render("■ libre") + "  " +
		m.styles.LegendBookedStyle.Render("■ reservado") + "  " +
		m.styles.LegendPastStyle.Render("■ pasado")

	statusStyle := m.styles.StatusStyle
	if m.statusErr {
		statusStyle = m.styles.ErrorStyle
	}

	return view.RenderFooter(view.FooterViewState{
		InnerW:      m.width,
		LegendLine:  legend,
		StatusLine:  m.statusMsg,
		HelpLine:    helpNormal,
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	})
}

func (m Model) renderModal() string {
	switch m.modalType {
	case ModalBookForm:
		return m.renderBookForm()
	case ModalDetail:
		return m.renderDetail()
	case ModalConfirmCancel:
		return m.renderConfirmCancel()
	case ModalInit:
		return m.renderInit()
	default:
		return ""
	}
}

func (m Model) renderBookForm() string {
	ms := m.styles.Modal
	when := m.formatter.SelectedDate(m.selectedDay())
	if slot, ok := m.selectedSlot(); ok {
		when += " " + slot.Start.String()
	}

	body := view.RenderFields(ms,
		view.Field{Label: "Cuándo", Value: when},
		view.Field{Label: "Cliente", Value: m.form.inputs[fieldClient].View()},
		view.Field{Label: "Servicio", Value: m.form.inputs[fieldService].View()},
		view.Field{Label: "Duración", Value: m.form.inputs[fieldDuration].View()},
	)
	if m.form.err != "" {
		body += "\n\n" + m.styles.ModalErrorStyle.Render(m.form.err)
	}
	return view.RenderModalFrame("Nueva cita", body, "enter reservar · tab campo · esc cancelar", ms)
}

func (m Model) renderDetail() string {
	a := m.modalAppt
	if a == nil {
		return ""
	}
	service := a.Service
	if service == "" {
		service = "—"
	}
	body := view.RenderFields(m.styles.Modal,
		view.Field{Label: "Cliente", Value: a.Client},
		view.Field{Label: "Servicio", Value: service},
		view.Field{Label: "Cuándo", Value: a.Label(m.formatter)},
		view.Field{Label: "Duración", Value: input.FormatDuration(a.DurationMinutes)},
		view.Field{Label: "Estado", Value: statusText(a.Status)},
	)
	return view.RenderModalFrame(fmt.Sprintf("Cita #%d", a.ID), body, "c cancelar · y copiar · esc cerrar", m.styles.Modal)
}

func (m Model) renderConfirmCancel() string {
	if m.modalAppt == nil {
		return ""
	}
	body := m.styles.Modal.ModalBodyStyle.Render(m.modalAppt.Summary(m.formatter)) + "\n\n" +
		view.RenderModalButtons(m.styles.Modal, 0, "Sí", "No")
	return view.RenderModalFrame("¿Cancelar cita?", body, "y confirmar · n volver", m.styles.Modal)
}

func (m Model) renderInit() string {
	ms := m.styles.Modal
	var lines []string
	if m.initState.DBMissing {
		lines = append(lines, "Las citas se guardarán en "+m.initState.DBPath)
	}
	body := ms.ModalBodyStyle.Render(strings.Join(lines, "\n"))
	hint := "enter continuar · q salir"

	if m.initState.ConfigMissing {
		intro := ms.ModalBodyStyle.Render("¿Cuándo atiendes? Se guardará en " + m.initState.ConfigPath)
		fields := view.RenderFields(ms,
			view.Field{Label: "Horario", Value: m.setup.inputs[setupHours].View()},
			view.Field{Label: "Días", Value: m.setup.inputs[setupDays].View()},
			view.Field{Label: "Hueco", Value: m.setup.inputs[setupSlot].View()},
		)
		body = intro + "\n\n" + fields + "\n\n" + body
		hint = "enter guardar · tab campo · esc salir"
	}

	if m.initError != "" {
		body += "\n\n" + m.styles.ModalErrorStyle.Render(m.initError)
	}
	return view.RenderModalFrame("Bienvenido a TurnoGo", body, hint, ms)
}

func statusText(s appointment.Status) string {
	switch s {
	case appointment.StatusScheduled:
		return "reservada"
	case appointment.StatusCancelled:
		return "cancelada"
	case appointment.StatusRescheduled:
		return "reprogramada"
	default:
		return string(s)
	}
}

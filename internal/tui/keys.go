package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/dateutil"
	"github.com/turnogo/turnogo/internal/slots"
	"github.com/turnogo/turnogo/internal/tui/commands"
	"github.com/turnogo/turnogo/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModeModal {
		return m.handleModalKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys on the slot grid.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		if m.dayIdx > 0 {
			m.dayIdx--
			m.focusFirstAvailable()
			LogCursorMove(m.selectedDay(), m.slotIdx, "prev day")
		}
	case "l", "right":
		if m.dayIdx < len(m.days)-1 {
			m.dayIdx++
			m.focusFirstAvailable()
			LogCursorMove(m.selectedDay(), m.slotIdx, "next day")
		}
	case "k", "up":
		if m.slotIdx > 0 {
			m.slotIdx--
		}
	case "j", "down":
		if m.slotIdx < len(m.daySlots())-1 {
			m.slotIdx++
		}
	case "g", "home":
		m.slotIdx = 0
	case "G", "end":
		m.slotIdx = max(len(m.daySlots())-1, 0)
	case "t":
		changed := m.refreshDays()
		m.dayIdx = 0
		m.focusFirstAvailable()
		LogCursorMove(m.selectedDay(), m.slotIdx, "today")
		if changed && m.repo != nil {
			m.loading = true
			return m, m.loadCmd()
		}
	case "n":
		if !m.jumpToNextAvailable() {
			return m.withStatus("No quedan huecos libres", false)
		}
		LogCursorMove(m.selectedDay(), m.slotIdx, "next available")
	case "r":
		m.refreshDays()
		if m.repo == nil {
			return m, nil
		}
		m.loading = true
		return m, m.loadCmd()

	case "enter", "b":
		return m.openSelected()
	case "c", "x":
		a := m.selectedAppointment()
		if a == nil {
			return m.withStatus("No hay cita en este horario", false)
		}
		m.modalAppt = a
		return m.openModal(ModalConfirmCancel, "cancel"), nil
	case "y":
		return m.copyAppointment(m.selectedAppointment())
	}

	return m, nil
}

// openSelected opens the booking form on a free slot or the detail view on
// a booked one.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	slot, ok := m.selectedSlot()
	if !ok {
		return m, nil
	}
	switch slot.Reason {
	case slots.ReasonNone:
		m.form = m.newForm()
		cmd := m.form.inputs[fieldClient].Focus()
		return m.openModal(ModalBookForm, "book"), cmd
	case slots.ReasonBooked:
		m.modalAppt = slot.BookedBy
		return m.openModal(ModalDetail, "detail"), nil
	default:
		return m.withStatus(reasonText(slot.Reason), false)
	}
}

func (m Model) copyAppointment(a *appointment.Appointment) (tea.Model, tea.Cmd) {
	if a == nil {
		return m.withStatus("No hay cita que copiar", false)
	}
	return m, commands.Copy(a.Summary(m.formatter))
}

// handleModalKeys dispatches to the open modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalBookForm:
		return m.handleFormKeys(msg)
	case ModalDetail:
		return m.handleDetailKeys(msg)
	case ModalConfirmCancel:
		return m.handleConfirmKeys(msg)
	case ModalInit:
		return m.handleInitKeys(msg)
	default:
		return m.closeModal("unknown modal"), nil
	}
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal("form cancelled"), nil
	case "tab", "down":
		return m.focusField((m.form.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m.focusField((m.form.focus + fieldCount - 1) % fieldCount)
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	f := m.form.focus
	m.form.inputs[f], cmd = m.form.inputs[f].Update(msg)
	m.form.err = ""
	return m, cmd
}

func (m Model) focusField(i int) (tea.Model, tea.Cmd) {
	m.form.inputs[m.form.focus].Blur()
	m.form.focus = i
	return m, m.form.inputs[i].Focus()
}

// submitForm validates the booking form and books the selected slot.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	slot, ok := m.selectedSlot()
	if !ok {
		m.form.err = "no hay horario seleccionado"
		return m, nil
	}

	duration, err := input.ParseDuration(m.form.inputs[fieldDuration].Value())
	if err != nil {
		m.form.err = "duración no válida (30, 45m, 1h30)"
		return m, nil
	}

	day := m.selectedDay()
	a, err := appointment.New(
		m.form.inputs[fieldClient].Value(),
		m.form.inputs[fieldService].Value(),
		day.Format(dateutil.Layout),
		slot.Start.String(),
		duration,
		m.now(),
	)
	if err != nil {
		m.form.err = describeError(err)
		return m, nil
	}

	if ok, reason := m.scheduler.CanFit(day, a.Start, a.DurationMinutes, m.appointments); !ok {
		m.form.err = reasonText(reason)
		return m, nil
	}

	m.form.err = ""
	return m, commands.Book(m.repo, a)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		return m.closeModal("detail closed"), nil
	case "c", "x":
		m.modalType = ModalConfirmCancel
		return m, nil
	case "y":
		return m.copyAppointment(m.modalAppt)
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y", "s", "enter":
		if m.modalAppt == nil {
			return m.closeModal("nothing to cancel"), nil
		}
		return m, commands.Cancel(m.repo, m.modalAppt.ID)
	case "n", "esc", "q":
		return m.closeModal("cancel aborted"), nil
	}
	return m, nil
}

func (m Model) handleInitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if !m.initState.ConfigMissing {
		switch key {
		case "enter", "y":
			return m.completeInit()
		case "q", "esc", "n":
			return m, tea.Quit
		}
		return m, nil
	}

	// The schedule fields take every other key.
	switch key {
	case "enter":
		return m.completeInit()
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		return m.focusSetupField((m.setup.focus + 1) % setupCount)
	case "shift+tab", "up":
		return m.focusSetupField((m.setup.focus + setupCount - 1) % setupCount)
	}

	var cmd tea.Cmd
	f := m.setup.focus
	m.setup.inputs[f], cmd = m.setup.inputs[f].Update(msg)
	m.initError = ""
	return m, cmd
}

func (m Model) focusSetupField(i int) (tea.Model, tea.Cmd) {
	m.setup.inputs[m.setup.focus].Blur()
	m.setup.focus = i
	return m, m.setup.inputs[i].Focus()
}

func (m Model) completeInit() (tea.Model, tea.Cmd) {
	next, err := m.finishInit()
	if err != nil {
		LogError("init", err)
		m.initError = err.Error()
		return m, nil
	}
	next.initError = ""
	next.loading = true
	next.form = next.newForm()
	next = next.closeModal("initialized")
	return next, next.loadCmd()
}

// reasonText explains in the UI why a slot cannot take a booking.
func reasonText(r slots.Reason) string {
	switch r {
	case slots.ReasonBooked:
		return "Ese horario ya está reservado"
	case slots.ReasonPast:
		return "Ese horario ya pasó"
	case slots.ReasonClosed:
		return "Ese día está cerrado"
	case slots.ReasonNoRoom:
		return "La cita no cabe antes del cierre"
	default:
		return "Horario no válido"
	}
}

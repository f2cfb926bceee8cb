package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/tui/commands"
)

const statusTTL = 4 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.AppointmentsLoadedMsg:
		m.appointments = msg.Appointments
		m.loading = false
		LogLoaded(msg.Start, msg.End, len(msg.Appointments))
		if !m.positioned {
			m.positioned = true
			m.focusFirstAvailable()
		}
		m.clampCursor()
		return m, nil

	case commands.BookedMsg:
		m = m.closeModal("booked")
		m.form = m.newForm()
		var cmd tea.Cmd
		m, cmd = m.withStatus("Reservado: "+msg.Appointment.Summary(m.formatter), false)
		return m, tea.Batch(m.loadCmd(), cmd)

	case commands.CancelledMsg:
		m = m.closeModal("cancelled")
		var cmd tea.Cmd
		m, cmd = m.withStatus(fmt.Sprintf("Cancelado #%d", msg.ID), false)
		return m, tea.Batch(m.loadCmd(), cmd)

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		LogError("command", msg.Err)
		if m.mode == ModeModal && m.modalType == ModalBookForm {
			m.form.err = describeError(msg.Err)
			return m, nil
		}
		if m.modalType == ModalConfirmCancel {
			m = m.closeModal("cancel failed")
		}
		return m.withStatus("Error: "+describeError(msg.Err), true)

	case commands.StatusMsgCmd:
		return m.withStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		m.statusSeq--
		if m.statusSeq <= 0 {
			m.statusSeq = 0
			m.statusMsg = ""
			m.statusErr = false
		}
		if m.refreshDays() && m.repo != nil {
			m.loading = true
			return m, m.loadCmd()
		}
		return m, nil
	}

	// Forward cursor blink and other messages to the focused input.
	if m.mode == ModeModal && m.modalType == ModalBookForm {
		var cmd tea.Cmd
		f := m.form.focus
		m.form.inputs[f], cmd = m.form.inputs[f].Update(msg)
		return m, cmd
	}
	if m.mode == ModeModal && m.modalType == ModalInit && m.initState.ConfigMissing {
		var cmd tea.Cmd
		f := m.setup.focus
		m.setup.inputs[f], cmd = m.setup.inputs[f].Update(msg)
		return m, cmd
	}

	return m, nil
}

// withStatus shows msg in the footer and schedules its removal. Only the
// last pending clear wipes the line, so a newer message outlives older ticks.
func (m Model) withStatus(msg string, isErr bool) (Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusSeq++
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func (m Model) openModal(t ModalType, reason string) Model {
	LogModeChange(m.mode, ModeModal, reason)
	m.mode = ModeModal
	m.modalType = t
	return m
}

func (m Model) closeModal(reason string) Model {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalAppt = nil
	return m
}

// describeError turns domain errors into short Spanish messages for the UI.
func describeError(err error) string {
	switch {
	case errors.Is(err, appointment.ErrSlotTaken):
		return "ese horario ya está reservado"
	case errors.Is(err, appointment.ErrEmptyClient):
		return "falta el nombre del cliente"
	case errors.Is(err, appointment.ErrInvalidDuration):
		return "duración no válida"
	case errors.Is(err, appointment.ErrCrossesMidnight):
		return "la cita no puede pasar de medianoche"
	case errors.Is(err, appointment.ErrNotScheduled):
		return "la cita ya no está activa"
	case errors.Is(err, appointment.ErrNotFound):
		return "la cita no existe"
	default:
		return err.Error()
	}
}

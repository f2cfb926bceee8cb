// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/turnogo/turnogo/internal/appointment"
)

// AppointmentsLoadedMsg is sent when the appointments of the visible days are loaded.
type AppointmentsLoadedMsg struct {
	Start        time.Time
	End          time.Time
	Appointments []*appointment.Appointment
}

// BookedMsg is sent when an appointment has been created.
type BookedMsg struct {
	Appointment *appointment.Appointment
}

// CancelledMsg is sent when an appointment has been cancelled.
type CancelledMsg struct {
	ID int64
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadRange loads every appointment between start and end (inclusive).
func LoadRange(repo appointment.Repository, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: fmt.Errorf("storage is not initialized")}
		}
		appts, err := repo.ListByDateRange(context.Background(), start, end)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading appointments: %w", err)}
		}
		return AppointmentsLoadedMsg{Start: start, End: end, Appointments: appts}
	}
}

// Book stores a new appointment.
func Book(repo appointment.Repository, a *appointment.Appointment) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: fmt.Errorf("storage is not initialized")}
		}
		if err := repo.Create(context.Background(), a); err != nil {
			return ErrMsg{Err: fmt.Errorf("booking: %w", err)}
		}
		return BookedMsg{Appointment: a}
	}
}

// Cancel cancels the appointment with the given ID.
func Cancel(repo appointment.Repository, id int64) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: fmt.Errorf("storage is not initialized")}
		}
		if err := repo.Cancel(context.Background(), id); err != nil {
			return ErrMsg{Err: fmt.Errorf("cancelling #%d: %w", id, err)}
		}
		return CancelledMsg{ID: id}
	}
}

// Copy puts text on the system clipboard and reports it in the status line.
func Copy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copiado: " + text}
	}
}

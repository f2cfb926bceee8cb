package tui

import (
	"time"

	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/dateutil"
	"github.com/turnogo/turnogo/internal/slots"
)

func (m Model) now() time.Time {
	return m.clock.Now()
}

// selectedDay returns the day under the cursor in the day strip.
func (m Model) selectedDay() time.Time {
	if len(m.days) == 0 {
		return dateutil.TruncateToDay(m.now())
	}
	return m.days[clamp(m.dayIdx, 0, len(m.days)-1)]
}

// daySlots returns the slot grid for the selected day.
func (m Model) daySlots() []slots.Slot {
	return m.scheduler.Slots(m.selectedDay(), m.appointments, m.now())
}

// selectedSlot returns the slot under the cursor.
func (m Model) selectedSlot() (slots.Slot, bool) {
	ss := m.daySlots()
	if len(ss) == 0 {
		return slots.Slot{}, false
	}
	return ss[clamp(m.slotIdx, 0, len(ss)-1)], true
}

// selectedAppointment returns the appointment covering the slot under the cursor.
func (m Model) selectedAppointment() *appointment.Appointment {
	slot, ok := m.selectedSlot()
	if !ok {
		return nil
	}
	return slot.BookedBy
}

// scheduledOn returns the scheduled appointments on day.
func (m Model) scheduledOn(day time.Time) []*appointment.Appointment {
	var out []*appointment.Appointment
	for _, a := range m.appointments {
		if a.IsScheduled() && dateutil.IsSameDay(a.Date, day) {
			out = append(out, a)
		}
	}
	return out
}

// focusFirstAvailable moves the slot cursor to the first bookable slot of
// the selected day, or the first slot when none is free.
func (m *Model) focusFirstAvailable() {
	m.slotIdx = 0
	for i, s := range m.daySlots() {
		if s.Available {
			m.slotIdx = i
			return
		}
	}
}

// jumpToNextAvailable moves both cursors to the first slot, from now on,
// that can hold an appointment of the default duration.
func (m *Model) jumpToNextAvailable() bool {
	day, slot, ok := m.scheduler.NextAvailable(m.now(), m.config.Schedule.DefaultDuration, len(m.days), m.appointments)
	if !ok {
		return false
	}
	for i, d := range m.days {
		if !dateutil.IsSameDay(d, day) {
			continue
		}
		m.dayIdx = i
		for j, s := range m.daySlots() {
			if s.Start == slot.Start {
				m.slotIdx = j
				return true
			}
		}
	}
	return false
}

// refreshDays rebuilds the day strip once the date has moved past its first
// day, keeping the selected day when it is still in range. It reports whether
// the strip changed.
func (m *Model) refreshDays() bool {
	now := m.now()
	if len(m.days) > 0 && dateutil.IsSameDay(m.days[0], now) {
		return false
	}
	selected := m.selectedDay()
	m.days = stripDays(now, m.config)
	m.dayIdx = 0
	for i, d := range m.days {
		if dateutil.IsSameDay(d, selected) {
			m.dayIdx = i
			break
		}
	}
	m.clampCursor()
	LogCursorMove(m.selectedDay(), m.slotIdx, "date changed")
	return true
}

// clampCursor keeps the cursors inside the current strip and grid.
func (m *Model) clampCursor() {
	m.dayIdx = clamp(m.dayIdx, 0, max(len(m.days)-1, 0))
	m.slotIdx = clamp(m.slotIdx, 0, max(len(m.daySlots())-1, 0))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/config"
	"github.com/turnogo/turnogo/internal/dateutil"
	"github.com/turnogo/turnogo/internal/db"
	"github.com/turnogo/turnogo/internal/slots"
)

// Friday, September 19, 2025, 10:05.
var now = time.Date(2025, 9, 19, 10, 5, 0, 0, time.Local)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newScheduler(t *testing.T) *slots.Scheduler {
	t.Helper()
	s := config.Default().Schedule
	sched, err := slots.New(s.Workdays, s.DayStart, s.DayEnd, s.SlotMinutes)
	if err != nil {
		t.Fatalf("failed to build scheduler: %v", err)
	}
	return sched
}

// book creates and stores an appointment or fails the test.
func book(t *testing.T, repo *db.SQLite, client, date, start string, duration int) *appointment.Appointment {
	t.Helper()
	a, err := appointment.New(client, "", date, start, duration, now)
	if err != nil {
		t.Fatalf("failed to build appointment: %v", err)
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("failed to book %s %s: %v", date, start, err)
	}
	return a
}

func TestBookingFlow(t *testing.T) {
	repo := openRepo(t)
	sched := newScheduler(t)
	ctx := context.Background()
	f := agenda.NewFormatter(dateutil.FixedClock(now))
	today := dateutil.TruncateToDay(now)

	// Fill today from the next slot to closing.
	book(t, repo, "Ana", "hoy", "10:15", 45)
	book(t, repo, "Luis", "hoy", "11:00", 7*60)

	booked, err := repo.ListByDateRange(ctx, today, today.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("ListByDateRange failed: %v", err)
	}
	if len(booked) != 2 {
		t.Fatalf("got %d appointments, want 2", len(booked))
	}
	if got := booked[0].Label(f); got != "Hoy ·15 - 11:00" {
		t.Errorf("Label = %q, want %q", got, "Hoy ·15 - 11:00")
	}

	// Nothing left today and the weekend is closed.
	day, slot, ok := sched.NextAvailable(now, 30, 7, booked)
	if !ok {
		t.Fatal("expected a free slot within a week")
	}
	if got := f.SelectedDate(day) + " " + slot.Label; got != "Lun, 22 Sept 9AM" {
		t.Errorf("next free slot = %q, want Lun, 22 Sept 9AM", got)
	}

	// Cancelling frees the slot for the scheduler and the database.
	if err := repo.Cancel(ctx, booked[0].ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	booked, err = repo.ListByDateRange(ctx, today, today)
	if err != nil {
		t.Fatalf("ListByDateRange failed: %v", err)
	}
	if ok, reason := sched.CanFit(today, "10:15", 45, booked); !ok {
		t.Errorf("cancelled slot should fit, reason %q", reason)
	}
	book(t, repo, "Eva", "hoy", "10:15", 45)
}

func TestReschedule_AcrossDays(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	f := agenda.NewFormatter(dateutil.FixedClock(now))

	a := book(t, repo, "Ana", "lunes", "09:00", 30)
	moved, err := repo.Reschedule(ctx, a.ID, a.Date.AddDate(0, 0, 1), "16:45")
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if got := moved.Summary(f); got != "Mar, 23 Sept ·45 - 17:15 · Ana" {
		t.Errorf("Summary = %q", got)
	}

	// The original slot is free again for someone else.
	book(t, repo, "Luis", "lunes", "09:00", 30)

	if _, err := repo.Reschedule(ctx, a.ID, a.Date, "12:00"); !errors.Is(err, appointment.ErrNotScheduled) {
		t.Errorf("rescheduling the old appointment: got %v, want ErrNotScheduled", err)
	}
}

func TestNewAppointment_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		client   string
		date     string
		start    string
		duration int
		wantErr  error
	}{
		{name: "empty client", client: "", date: "hoy", start: "12:00", duration: 30, wantErr: appointment.ErrEmptyClient},
		{name: "past date", client: "Ana", date: "2025-09-18", start: "12:00", duration: 30, wantErr: dateutil.ErrDateInPast},
		{name: "bad date", client: "Ana", date: "19/09/2025", start: "12:00", duration: 30, wantErr: dateutil.ErrInvalidDateFormat},
		{name: "bad start", client: "Ana", date: "hoy", start: "12", duration: 30, wantErr: appointment.ErrInvalidTimeStart},
		{name: "zero duration", client: "Ana", date: "hoy", start: "12:00", duration: 0, wantErr: appointment.ErrInvalidDuration},
		{name: "past midnight", client: "Ana", date: "hoy", start: "23:45", duration: 30, wantErr: appointment.ErrCrossesMidnight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := appointment.New(tt.client, "", tt.date, tt.start, tt.duration, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

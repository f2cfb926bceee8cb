package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/dateutil"
)

// Friday, September 19, 2025 at 08:00.
var refNow = time.Date(2025, 9, 19, 8, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	a, err := New("  Ana Pérez ", "Corte", "2025-09-22", "09:30", 45, refNow)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Client != "Ana Pérez" {
		t.Errorf("Client = %q, want trimmed name", a.Client)
	}
	if !a.Date.Equal(time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", a.Date)
	}
	if a.Status != StatusScheduled {
		t.Errorf("Status = %q, want scheduled", a.Status)
	}
	if a.End() != "10:15" {
		t.Errorf("End() = %q, want 10:15", a.End())
	}
	if !a.CreatedAt.Equal(refNow) {
		t.Errorf("CreatedAt = %v, want %v", a.CreatedAt, refNow)
	}
}

func TestNew_RelativeDates(t *testing.T) {
	tests := []struct {
		date string
		want time.Time
	}{
		{date: "", want: time.Date(2025, 9, 19, 0, 0, 0, 0, time.UTC)},
		{date: "mañana", want: time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)},
		{date: "lunes", want: time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			a, err := New("Ana", "", tt.date, "10:00", 30, refNow)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !a.Date.Equal(tt.want) {
				t.Errorf("Date = %v, want %v", a.Date, tt.want)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		client   string
		date     string
		start    string
		duration int
		wantErr  error
	}{
		{name: "empty client", client: "  ", start: "09:00", duration: 30, wantErr: ErrEmptyClient},
		{name: "past date", client: "Ana", date: "2025-09-18", start: "09:00", duration: 30, wantErr: dateutil.ErrDateInPast},
		{name: "bad date", client: "Ana", date: "19/09/2025", start: "09:00", duration: 30, wantErr: dateutil.ErrInvalidDateFormat},
		{name: "bad start", client: "Ana", start: "9:00", duration: 30, wantErr: ErrInvalidTimeStart},
		{name: "start out of range", client: "Ana", start: "24:00", duration: 30, wantErr: ErrInvalidTimeStart},
		{name: "zero duration", client: "Ana", start: "09:00", duration: 0, wantErr: ErrInvalidDuration},
		{name: "negative duration", client: "Ana", start: "09:00", duration: -15, wantErr: ErrInvalidDuration},
		{name: "too long", client: "Ana", start: "09:00", duration: MaxDurationMinutes + 1, wantErr: ErrInvalidDuration},
		{name: "crosses midnight", client: "Ana", start: "23:50", duration: 30, wantErr: ErrCrossesMidnight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.client, "", tt.date, tt.start, tt.duration, refNow)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWindow_EndsAtMidnight(t *testing.T) {
	if err := ValidateWindow("23:30", 30); err != nil {
		t.Errorf("ending exactly at midnight should be allowed, got %v", err)
	}
}

func TestOverlapsWith(t *testing.T) {
	day := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	mk := func(date time.Time, start string, dur int) *Appointment {
		return &Appointment{Date: date, Start: start, DurationMinutes: dur, Status: StatusScheduled}
	}

	tests := []struct {
		name string
		a, b *Appointment
		want bool
	}{
		{name: "adjacent", a: mk(day, "09:00", 30), b: mk(day, "09:30", 30), want: false},
		{name: "partial", a: mk(day, "09:00", 45), b: mk(day, "09:30", 30), want: true},
		{name: "contained", a: mk(day, "09:00", 120), b: mk(day, "10:00", 15), want: true},
		{name: "different day", a: mk(day, "09:00", 60), b: mk(day.AddDate(0, 0, 1), "09:00", 60), want: false},
		{name: "ends at midnight", a: mk(day, "23:30", 30), b: mk(day, "23:45", 15), want: true},
		{name: "midnight end vs early morning", a: mk(day, "23:30", 30), b: mk(day, "00:00", 30), want: false},
		{name: "zero duration", a: mk(day, "09:00", 0), b: mk(day, "09:00", 30), want: false},
		{name: "nil other", a: mk(day, "09:00", 30), b: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.OverlapsWith(tt.b); got != tt.want {
				t.Errorf("OverlapsWith = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPast(t *testing.T) {
	a := &Appointment{
		Date:            time.Date(2025, 9, 19, 0, 0, 0, 0, time.UTC),
		Start:           "09:00",
		DurationMinutes: 30,
	}
	if a.IsPast(time.Date(2025, 9, 19, 9, 15, 0, 0, time.UTC)) {
		t.Error("appointment in progress should not be past")
	}
	if !a.IsPast(time.Date(2025, 9, 19, 9, 31, 0, 0, time.UTC)) {
		t.Error("appointment should be past after its end")
	}
}

func TestLabelAndSummary(t *testing.T) {
	f := agenda.NewFormatter(dateutil.FixedClock(refNow))

	today := &Appointment{
		Client: "Ana", Service: "Corte",
		Date: time.Date(2025, 9, 19, 0, 0, 0, 0, time.UTC), Start: "09:00", DurationMinutes: 30,
	}
	if got := today.Label(f); got != "Hoy 9AM - 09:30" {
		t.Errorf("Label = %q", got)
	}
	if got := today.Summary(f); got != "Hoy 9AM - 09:30 · Ana (Corte)" {
		t.Errorf("Summary = %q", got)
	}

	later := &Appointment{
		Client: "Luis",
		Date:   time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC), Start: "14:15", DurationMinutes: 45,
	}
	if got := later.Summary(f); got != "Lun, 22 Sept ·15 - 15:00 · Luis" {
		t.Errorf("Summary = %q", got)
	}
}

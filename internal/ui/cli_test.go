package ui

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/config"
	"github.com/turnogo/turnogo/internal/dateutil"
)

// Friday, September 19, 2025, 10:05.
var friday = time.Date(2025, 9, 19, 10, 5, 0, 0, time.Local)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "data", "turnogo.db")
	return cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	DisableColor()
	var out bytes.Buffer
	app := NewApp(nil, cfg, WithClock(dateutil.FixedClock(friday)), WithOutput(&out))
	defer func() { _ = app.Close() }()
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	out, err := run(t, cfg, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func TestVersion(t *testing.T) {
	out := mustRun(t, testConfig(t), "version")
	if !strings.HasPrefix(out, "turnogo dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestBook(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "explicit slot",
			args: []string{"book", "Ana", "--date", "2025-09-22", "--start", "10:30", "--duration", "45", "--service", "Corte"},
			want: "Reservada #1: Lun, 22 Sept ·30 - 11:15 · Ana (Corte)\n",
		},
		{
			name: "next free slot",
			args: []string{"book", "Luis"},
			want: "Reservada #1: Hoy ·15 - 10:45 · Luis\n",
		},
		{
			name: "first slot of a given day",
			args: []string{"book", "Eva", "--date", "lunes"},
			want: "Reservada #1: Lun, 22 Sept 9AM - 09:30 · Eva\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRun(t, testConfig(t), tt.args...); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBook_FirstFitSkipsBooked(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "book", "Ana", "--date", "2025-09-22", "--start", "09:00", "--duration", "60")

	out := mustRun(t, cfg, "book", "Luis", "--date", "2025-09-22")
	if !strings.Contains(out, "Lun, 22 Sept 10AM - 10:30") {
		t.Errorf("output = %q, want the 10AM slot", out)
	}
}

func TestBook_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "overlap", args: []string{"book", "Luis", "--date", "2025-09-22", "--start", "09:15"}, wantErr: ErrSlotUnavailable},
		{name: "closed day", args: []string{"book", "Luis", "--date", "2025-09-20", "--start", "10:00"}, wantErr: ErrSlotUnavailable},
		{name: "already started", args: []string{"book", "Luis", "--start", "09:00"}, wantErr: ErrSlotUnavailable},
		{name: "after closing", args: []string{"book", "Luis", "--date", "2025-09-22", "--start", "17:45"}, wantErr: ErrSlotUnavailable},
		{name: "past date", args: []string{"book", "Luis", "--date", "2025-09-18", "--start", "10:00"}, wantErr: dateutil.ErrDateInPast},
		{name: "crosses midnight", args: []string{"book", "Luis", "--date", "2025-09-22", "--start", "23:50"}, wantErr: appointment.ErrCrossesMidnight},
		{name: "bad start", args: []string{"book", "Luis", "--start", "9:00"}, wantErr: appointment.ErrInvalidTimeStart},
		{name: "empty client", args: []string{"book", " ", "--date", "2025-09-22", "--start", "12:00"}, wantErr: appointment.ErrEmptyClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			mustRun(t, cfg, "book", "Ana", "--date", "2025-09-22", "--start", "09:00")

			_, err := run(t, cfg, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBook_NoRoomLeft(t *testing.T) {
	cfg := testConfig(t)
	cfg.Schedule.DaysAhead = 1
	mustRun(t, cfg, "book", "Ana", "--start", "10:15", "--duration", "465")

	if _, err := run(t, cfg, "book", "Luis"); !errors.Is(err, ErrNoFreeSlot) {
		t.Errorf("got error %v, want ErrNoFreeSlot", err)
	}
}

func TestCancel(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "book", "Ana", "--date", "2025-09-22", "--start", "09:00", "--service", "Corte")

	out := mustRun(t, cfg, "cancel", "1")
	if out != "Cancelada #1: Lun, 22 Sept 9AM - 09:30 · Ana (Corte)\n" {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, cfg, "cancel", "1"); !errors.Is(err, appointment.ErrNotScheduled) {
		t.Errorf("second cancel: got %v, want ErrNotScheduled", err)
	}
	if _, err := run(t, cfg, "cancel", "99"); !errors.Is(err, appointment.ErrNotFound) {
		t.Errorf("missing cancel: got %v, want ErrNotFound", err)
	}
	if _, err := run(t, cfg, "cancel", "abc"); err == nil {
		t.Error("expected error for a non-numeric ID")
	}

	// The freed slot can be booked again.
	mustRun(t, cfg, "book", "Luis", "--date", "2025-09-22", "--start", "09:00")
}

func TestReschedule(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "book", "Ana", "--date", "2025-09-22", "--start", "09:00", "--duration", "60")
	mustRun(t, cfg, "book", "Luis", "--date", "2025-09-22", "--start", "12:00")

	out := mustRun(t, cfg, "reschedule", "1", "--start", "09:30")
	if out != "Reprogramada #1 → #3: Lun, 22 Sept ·30 - 10:30 · Ana\n" {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, cfg, "reschedule", "3", "--start", "11:30"); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("collision: got %v, want ErrSlotUnavailable", err)
	}
	if _, err := run(t, cfg, "reschedule", "1", "--start", "15:00"); !errors.Is(err, appointment.ErrNotScheduled) {
		t.Errorf("old appointment: got %v, want ErrNotScheduled", err)
	}

	out = mustRun(t, cfg, "reschedule", "3", "--date", "martes", "--start", "16:00")
	if !strings.Contains(out, "Mar, 23 Sept 4PM - 17:00") {
		t.Errorf("output = %q", out)
	}
}

func TestList(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "book", "Ana", "--start", "11:00", "--service", "Corte")
	mustRun(t, cfg, "book", "Luis", "--date", "2025-09-22", "--start", "09:00")
	mustRun(t, cfg, "book", "Eva", "--date", "2025-09-22", "--start", "10:00")
	mustRun(t, cfg, "cancel", "3")

	out := mustRun(t, cfg, "list")
	for _, want := range []string{"=== Hoy 2025-09-19 ===", "=== Lun, 22 Sept 2025-09-22 ===", "#1", "11AM - 11:30", "Ana (Corte)", "Luis"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Eva") {
		t.Error("cancelled appointment listed without --all")
	}

	out = mustRun(t, cfg, "list", "--all", "--start", "2025-09-22")
	if !strings.Contains(out, "Eva") || !strings.Contains(out, "[cancelled]") {
		t.Errorf("--all should show cancelled:\n%s", out)
	}
	if strings.Contains(out, "Ana") {
		t.Error("range should start on Monday")
	}

	out = mustRun(t, cfg, "list", "--start", "2025-10-01", "--end", "2025-10-02")
	if out != "No hay citas en ese periodo.\n" {
		t.Errorf("empty range output = %q", out)
	}

	if _, err := run(t, cfg, "list", "--start", "2025-09-22", "--end", "2025-09-20"); !errors.Is(err, dateutil.ErrEndDateBeforeStart) {
		t.Errorf("got %v, want ErrEndDateBeforeStart", err)
	}
	if _, err := run(t, cfg, "list", "--start", "lunes", "--end", "mañana"); !errors.Is(err, dateutil.ErrEndDateBeforeStart) {
		t.Errorf("relative range: got %v, want ErrEndDateBeforeStart", err)
	}

	out = mustRun(t, cfg, "list", "--start", "lunes", "--end", "lunes")
	if !strings.Contains(out, "Luis") || strings.Contains(out, "Ana") {
		t.Errorf("relative one-day range:\n%s", out)
	}
}

func TestList_MarksFinishedAppointments(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "book", "Ana", "--start", "10:15")
	mustRun(t, cfg, "book", "Luis", "--start", "15:00")

	var out bytes.Buffer
	later := friday.Add(2 * time.Hour)
	app := NewApp(nil, cfg, WithClock(dateutil.FixedClock(later)), WithOutput(&out))
	defer func() { _ = app.Close() }()
	app.SetArgs([]string{"list"})
	if err := app.Execute(); err != nil {
		t.Fatalf("list: %v", err)
	}

	for _, line := range strings.Split(out.String(), "\n") {
		switch {
		case strings.Contains(line, "Ana") && !strings.Contains(line, "[pasada]"):
			t.Errorf("finished appointment not tagged: %q", line)
		case strings.Contains(line, "Luis") && strings.Contains(line, "[pasada]"):
			t.Errorf("upcoming appointment tagged: %q", line)
		}
	}
}

func TestList_Week(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "book", "Ana", "--start", "11:00")
	mustRun(t, cfg, "book", "Luis", "--date", "2025-09-22", "--start", "09:00")
	mustRun(t, cfg, "book", "Eva", "--date", "2025-09-26", "--start", "09:00")

	// Monday 15 to Sunday 21 around Friday 19.
	out := mustRun(t, cfg, "list", "--week")
	if !strings.Contains(out, "Ana") || strings.Contains(out, "Luis") {
		t.Errorf("current week:\n%s", out)
	}

	out = mustRun(t, cfg, "list", "-w", "--start", "proxima-semana")
	if !strings.Contains(out, "Luis") || strings.Contains(out, "Ana") {
		t.Errorf("next week:\n%s", out)
	}

	if _, err := run(t, cfg, "list", "--week", "--end", "2025-09-30"); err == nil {
		t.Error("--week with --end should be rejected")
	}
}

func TestShow(t *testing.T) {
	cfg := testConfig(t)
	out := mustRun(t, cfg, "show")
	if !strings.Contains(out, "No hay citas para hoy.") || !strings.Contains(out, "Próximo hueco libre: Hoy ·15") {
		t.Errorf("show output = %q", out)
	}

	mustRun(t, cfg, "book", "Ana", "--start", "10:15", "--duration", "465")
	out = mustRun(t, cfg, "show")
	if !strings.Contains(out, "=== Hoy ===") || !strings.Contains(out, "Ana") {
		t.Errorf("show output = %q", out)
	}
	if !strings.Contains(out, "Próximo hueco libre: Lun, 22 Sept 9AM") {
		t.Errorf("next free slot should be Monday: %q", out)
	}
}

func TestSlots(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "book", "Ana", "--start", "10:15", "--service", "Tinte")

	out := mustRun(t, cfg, "slots")
	for _, want := range []string{"=== Hoy ===", "9AM    —", "·15    Ana (Tinte) hasta 10:45", "·30    ┆", "·45    libre", "29 libres"} {
		if !strings.Contains(out, want) {
			t.Errorf("slots missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, cfg, "slots", "2025-09-20")
	if out != "=== Sáb, 20 Sept ===\nCerrado.\n" {
		t.Errorf("closed day output = %q", out)
	}
}

func TestDays(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "book", "Ana", "--date", "2025-09-22", "--start", "09:00")
	mustRun(t, cfg, "book", "Luis", "--date", "2025-09-22", "--start", "11:00")
	mustRun(t, cfg, "book", "Eva", "--date", "2025-09-23", "--start", "11:00")

	out := mustRun(t, cfg, "days", "-n", "5")
	want := strings.Join([]string{
		"  Hoy            libre",
		"  Sáb, 20 Sept   cerrado",
		"  Dom, 21 Sept   cerrado",
		"  Lun, 22 Sept   2 citas",
		"  Mar, 23 Sept   1 cita",
		"",
	}, "\n")
	if out != want {
		t.Errorf("days output:\n%s\nwant:\n%s", out, want)
	}
}

func TestFmt(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"fmt", "date"}, want: "Hoy\n"},
		{args: []string{"fmt", "date", "2025-09-22"}, want: "Lun, 22 Sept\n"},
		{args: []string{"fmt", "date", "2025-05-02"}, want: "Vie, 2 Mayo\n"},
		{args: []string{"fmt", "time", "09:00"}, want: "9AM\n"},
		{args: []string{"fmt", "time", "14:15"}, want: "·15\n"},
		{args: []string{"fmt", "time", "09:05"}, want: "9:05\n"},
		{args: []string{"fmt", "time"}, want: "10:05\n"},
		{args: []string{"fmt", "end", "23:50", "30"}, want: "00:20\n"},
		{args: []string{"fmt", "end", "--", "00:10", "-30"}, want: "23:40\n"},
		{args: []string{"fmt", "range", "09:00", "30"}, want: "9AM - 09:30\n"},
	}

	cfg := testConfig(t)
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			if got := mustRun(t, cfg, tt.args...); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmt_Errors(t *testing.T) {
	cfg := testConfig(t)
	for _, args := range [][]string{
		{"fmt", "time", "9:00"},
		{"fmt", "end", "24:00", "30"},
		{"fmt", "end", "09:00", "half"},
		{"fmt", "date", "someday"},
	} {
		if _, err := run(t, cfg, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestClose_Idempotent(t *testing.T) {
	app := NewApp(nil, testConfig(t))
	if err := app.ensureRepo(); err != nil {
		t.Fatalf("ensureRepo failed: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

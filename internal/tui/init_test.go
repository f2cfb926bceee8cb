package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/turnogo/turnogo/internal/config"
)

func TestDetectInitState(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "data", "turnogo.db")
	cfgPath := filepath.Join(dir, "config.toml")

	state, err := detectInitState(cfg, cfgPath)
	if err != nil {
		t.Fatalf("detectInitState failed: %v", err)
	}
	if !state.NeedsInit || !state.ConfigMissing || !state.DBMissing {
		t.Errorf("state = %+v, want everything missing", state)
	}

	if err := cfg.SaveTo(cfgPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	state, err = detectInitState(cfg, cfgPath)
	if err != nil {
		t.Fatalf("detectInitState failed: %v", err)
	}
	if state.ConfigMissing || !state.DBMissing || !state.NeedsInit {
		t.Errorf("state = %+v, want only db missing", state)
	}
}

func TestPathMissing_Empty(t *testing.T) {
	missing, err := pathMissing("")
	if err != nil || !missing {
		t.Errorf("pathMissing(\"\") = %v, %v; want true, nil", missing, err)
	}
}

func TestInitModal_CreatesStorage(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "data", "turnogo.db")
	cfgPath := filepath.Join(dir, "config.toml")

	state, err := detectInitState(cfg, cfgPath)
	if err != nil {
		t.Fatalf("detectInitState failed: %v", err)
	}
	m := *New(nil, cfg, WithInitState(state))
	if m.mode != ModeModal || m.modalType != ModalInit {
		t.Fatalf("mode=%v modal=%v, want init modal", m.mode, m.modalType)
	}

	m, cmd := press(t, m, "enter")
	if m.repo == nil {
		t.Fatalf("repo not opened, initError %q", m.initError)
	}
	t.Cleanup(func() { _ = m.repo.Close() })

	if m.mode != ModeNormal {
		t.Error("init modal should close")
	}
	if cmd == nil {
		t.Error("expected initial load")
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("config not written: %v", err)
	}
	if _, err := os.Stat(cfg.Storage.DBPath); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestInitModal_Quit(t *testing.T) {
	m := *New(nil, config.Default(), WithInitState(InitState{NeedsInit: true, DBMissing: true}))
	if _, cmd := press(t, m, "q"); cmd == nil {
		t.Error("q should quit from the init modal")
	}
}

func newInitModel(t *testing.T) (Model, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "data", "turnogo.db")
	cfgPath := filepath.Join(dir, "config.toml")

	state, err := detectInitState(cfg, cfgPath)
	if err != nil {
		t.Fatalf("detectInitState failed: %v", err)
	}
	return *New(nil, cfg, WithInitState(state)), cfgPath
}

func TestInitModal_PrefillsSchedule(t *testing.T) {
	m, _ := newInitModel(t)

	want := [setupCount]string{"09:00-18:00", "lun-vie", "15"}
	for i, w := range want {
		if got := m.setup.inputs[i].Value(); got != w {
			t.Errorf("field %d = %q, want %q", i, got, w)
		}
	}
}

func TestInitModal_SeedsSchedule(t *testing.T) {
	m, cfgPath := newInitModel(t)
	m.setup.inputs[setupHours].SetValue("10:00 - 14:00")
	m.setup.inputs[setupDays].SetValue("mar-sáb")
	m.setup.inputs[setupSlot].SetValue("30m")

	m, _ = press(t, m, "enter")
	if m.repo == nil {
		t.Fatalf("repo not opened, initError %q", m.initError)
	}
	t.Cleanup(func() { _ = m.repo.Close() })

	saved, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	s := saved.Schedule
	if s.DayStart != "10:00" || s.DayEnd != "14:00" || s.SlotMinutes != 30 {
		t.Errorf("saved schedule = %s-%s every %d", s.DayStart, s.DayEnd, s.SlotMinutes)
	}
	if got := strings.Join(s.Workdays, ","); got != "tuesday,wednesday,thursday,friday,saturday" {
		t.Errorf("saved workdays = %s", got)
	}

	if got := len(m.scheduler.Slots(friday, nil, friday)); got != 8 {
		t.Errorf("grid has %d slots, want 8 half hours", got)
	}
}

func TestInitModal_RejectsBadSchedule(t *testing.T) {
	tests := []struct {
		name  string
		field int
		value string
	}{
		{name: "no dash", field: setupHours, value: "09:00"},
		{name: "closing before opening", field: setupHours, value: "18:00-09:00"},
		{name: "unknown day", field: setupDays, value: "lun,xyz"},
		{name: "backwards range", field: setupDays, value: "vie-lun"},
		{name: "bad slot", field: setupSlot, value: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cfgPath := newInitModel(t)
			m.setup.inputs[tt.field].SetValue(tt.value)

			m, _ = press(t, m, "enter")
			if m.initError == "" {
				t.Error("expected an error on the init screen")
			}
			if m.modalType != ModalInit || m.repo != nil {
				t.Error("init screen should stay open without storage")
			}
			if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
				t.Errorf("config should not be written, stat err %v", err)
			}
		})
	}
}

func TestInitModal_TypingDoesNotQuit(t *testing.T) {
	m, _ := newInitModel(t)
	m.setup.inputs[setupDays].SetValue("")
	m, _ = press(t, m, "tab")

	m, cmd := press(t, m, "q")
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("q should be typed into the field, not quit")
		}
	}
	if got := m.setup.inputs[setupDays].Value(); got != "q" {
		t.Errorf("days field = %q, want q", got)
	}
}

func TestParseWorkdays(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "lun-vie", want: "monday,tuesday,wednesday,thursday,friday"},
		{in: "Lunes - Miércoles", want: "monday,tuesday,wednesday"},
		{in: "lun,mié,vie", want: "monday,wednesday,friday"},
		{in: "sabado", want: "saturday"},
		{in: "sáb-dom", want: "saturday,sunday"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseWorkdays(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, ",") != tt.want {
				t.Errorf("got %v, want %s", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "lu", "vie-lun", "lun,,mar"} {
		if _, err := parseWorkdays(bad); err == nil {
			t.Errorf("parseWorkdays(%q): expected error", bad)
		}
	}
}

func TestFormatWorkdays(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{in: []string{"monday", "tuesday", "wednesday", "thursday", "friday"}, want: "lun-vie"},
		{in: []string{"Monday", "Wednesday", "Friday"}, want: "lun,mié,vie"},
		{in: []string{"saturday", "sunday"}, want: "sáb,dom"},
	}
	for _, tt := range tests {
		if got := formatWorkdays(tt.in); got != tt.want {
			t.Errorf("formatWorkdays(%v) = %q, want %q", tt.in, got, tt.want)
		}
		days, err := parseWorkdays(formatWorkdays(tt.in))
		if err != nil || len(days) != len(tt.in) {
			t.Errorf("round trip of %v = %v, %v", tt.in, days, err)
		}
	}
}

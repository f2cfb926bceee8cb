package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/config"
	"github.com/turnogo/turnogo/internal/db"
	"github.com/turnogo/turnogo/internal/tui/input"
)

// InitState tracks whether first-run setup is required.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// DetectInitState checks for a missing config file or database.
func DetectInitState(cfg *config.Config) (InitState, error) {
	return detectInitState(cfg, config.DefaultConfigPath())
}

func detectInitState(cfg *config.Config, configPath string) (InitState, error) {
	state := InitState{
		ConfigPath: configPath,
		DBPath:     cfg.Storage.DBPath,
	}

	configMissing, err := pathMissing(state.ConfigPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	dbMissing, err := pathMissing(state.DBPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}

	state.ConfigMissing = configMissing
	state.DBMissing = dbMissing
	state.NeedsInit = configMissing || dbMissing
	return state, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	return false, err
}

func openRepo(dbPath string) (appointment.Repository, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

// First-run schedule fields, asked only when there is no config file yet.
const (
	setupHours = iota
	setupDays
	setupSlot
	setupCount
)

type setupForm struct {
	inputs [setupCount]textinput.Model
	focus  int
}

// newSetupForm prefills the opening hours, workdays and slot length from the
// current config.
func (m Model) newSetupForm() setupForm {
	s := m.config.Schedule
	values := [setupCount]string{
		s.DayStart + "-" + s.DayEnd,
		formatWorkdays(s.Workdays),
		strconv.Itoa(s.SlotMinutes),
	}
	placeholders := [setupCount]string{"09:00-18:00", "lun-vie", "15"}

	var f setupForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 40
		ti.Width = 24
		ti.Prompt = ""
		ti.PlaceholderStyle = m.styles.ModalPlaceholderStyle
		ti.TextStyle = m.styles.ModalInputTextStyle
		ti.Cursor.Style = m.styles.ModalInputCursorStyle
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[setupHours].Focus()
	return f
}

// applySetup copies the schedule typed on the first-run screen into a new
// config and rebuilds the slot grid from it.
func (m Model) applySetup() (Model, error) {
	cfg := *m.config

	from, to, ok := strings.Cut(m.setup.inputs[setupHours].Value(), "-")
	if !ok {
		return m, errors.New("horario: usa HH:MM-HH:MM")
	}
	cfg.Schedule.DayStart = strings.TrimSpace(from)
	cfg.Schedule.DayEnd = strings.TrimSpace(to)

	days, err := parseWorkdays(m.setup.inputs[setupDays].Value())
	if err != nil {
		return m, err
	}
	cfg.Schedule.Workdays = days

	slot, err := input.ParseDuration(m.setup.inputs[setupSlot].Value())
	if err != nil {
		return m, fmt.Errorf("hueco: %w", err)
	}
	cfg.Schedule.SlotMinutes = slot

	if err := cfg.Validate(); err != nil {
		return m, err
	}
	m.config = &cfg
	m.scheduler = newScheduler(m.config)
	return m, nil
}

// mondayFirst orders the week the way opening hours are usually written.
var mondayFirst = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var unaccent = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

// dayIndex maps a Spanish day name or abbreviation ("lun", "miércoles") to
// its position in mondayFirst, or -1.
func dayIndex(name string) int {
	name = unaccent.Replace(strings.ToLower(strings.TrimSpace(name)))
	if len(name) < 3 {
		return -1
	}
	for i, d := range mondayFirst {
		if unaccent.Replace(strings.ToLower(agenda.DayAbbrev(d))) == name[:3] {
			return i
		}
	}
	return -1
}

// parseWorkdays accepts a range ("lun-vie") or a list ("lun,mié,vie") and
// returns config weekday names.
func parseWorkdays(s string) ([]string, error) {
	var idx []int
	if from, to, ok := strings.Cut(s, "-"); ok {
		i, j := dayIndex(from), dayIndex(to)
		if i < 0 || j < 0 || j < i {
			return nil, fmt.Errorf("días no válidos: %q", s)
		}
		for k := i; k <= j; k++ {
			idx = append(idx, k)
		}
	} else {
		for _, part := range strings.Split(s, ",") {
			i := dayIndex(part)
			if i < 0 {
				return nil, fmt.Errorf("día no válido: %q", strings.TrimSpace(part))
			}
			idx = append(idx, i)
		}
	}

	days := make([]string, len(idx))
	for n, i := range idx {
		days[n] = strings.ToLower(mondayFirst[i].String())
	}
	return days, nil
}

// formatWorkdays renders config weekday names the way parseWorkdays reads
// them, as a range when they are consecutive.
func formatWorkdays(days []string) string {
	var idx []int
	for _, d := range days {
		for i, wd := range mondayFirst {
			if strings.EqualFold(strings.TrimSpace(d), wd.String()) {
				idx = append(idx, i)
			}
		}
	}
	abbrev := func(i int) string { return strings.ToLower(agenda.DayAbbrev(mondayFirst[i])) }

	consecutive := len(idx) > 2
	for n := 1; n < len(idx) && consecutive; n++ {
		consecutive = idx[n] == idx[n-1]+1
	}
	if consecutive {
		return abbrev(idx[0]) + "-" + abbrev(idx[len(idx)-1])
	}
	parts := make([]string, len(idx))
	for n, i := range idx {
		parts[n] = abbrev(i)
	}
	return strings.Join(parts, ",")
}

// finishInit applies the typed schedule, if asked for one, then creates the
// config file and database.
func (m Model) finishInit() (Model, error) {
	if m.initState.ConfigMissing {
		var err error
		if m, err = m.applySetup(); err != nil {
			return m, err
		}
	}
	return m.initializeStorage()
}

// initializeStorage writes the config file and opens the database as
// needed to leave the first-run screen.
func (m Model) initializeStorage() (Model, error) {
	if m.initState.ConfigMissing {
		if err := m.config.SaveTo(m.initState.ConfigPath); err != nil {
			return m, fmt.Errorf("saving config: %w", err)
		}
	}

	if m.repo == nil {
		repo, err := openRepo(m.initState.DBPath)
		if err != nil {
			return m, err
		}
		m.repo = repo
	}

	m.initState = InitState{}
	return m, nil
}

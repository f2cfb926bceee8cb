package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/config"
	"github.com/turnogo/turnogo/internal/dateutil"
	"github.com/turnogo/turnogo/internal/slots"
	"github.com/turnogo/turnogo/internal/tui/commands"
	"github.com/turnogo/turnogo/internal/tui/input"
	"github.com/turnogo/turnogo/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeModal:
		return "modal"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone          ModalType = iota
	ModalBookForm                // New appointment on the selected slot
	ModalDetail                  // View a booked appointment
	ModalConfirmCancel           // Confirm cancelling an appointment
	ModalInit                    // First run: create config and database
)

// Form field indexes.
const (
	fieldClient = iota
	fieldService
	fieldDuration
	fieldCount
)

// bookingForm holds the state of the booking modal.
type bookingForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo      appointment.Repository
	config    *config.Config
	scheduler *slots.Scheduler
	formatter *agenda.Formatter
	clock     dateutil.Clock

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	days         []time.Time // Day strip, starting today
	dayIdx       int
	slotIdx      int
	appointments []*appointment.Appointment // Everything in the strip's range
	loading      bool
	positioned   bool // Cursor has been placed after the first load

	// Modal state
	mode      Mode
	modalType ModalType
	modalAppt *appointment.Appointment
	form      bookingForm
	initState InitState
	initError string
	setup     setupForm

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg string
	statusErr bool
	statusSeq int // pending clear ticks

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeModal
			m.modalType = ModalInit
		}
	}
}

// WithClock replaces the system clock, pinning "today" and "now".
func WithClock(clock dateutil.Clock) ModelOption {
	return func(m *Model) {
		m.clock = clock
		m.formatter = agenda.NewFormatter(clock)
		m.days = stripDays(clock.Now(), m.config)
	}
}

// New creates a new TUI model.
func New(repo appointment.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}

	m := &Model{
		repo:      repo,
		config:    cfg,
		scheduler: newScheduler(cfg),
		formatter: agenda.NewFormatter(dateutil.SystemClock),
		clock:     dateutil.SystemClock,
		theme:     t,
		styles:    NewStyles(t),
		days:      stripDays(dateutil.SystemClock.Now(), cfg),
		mode:      ModeNormal,
		loading:   repo != nil,
	}

	for _, opt := range opts {
		opt(m)
	}
	m.form = m.newForm()
	if m.initState.ConfigMissing {
		m.setup = m.newSetupForm()
	}

	return m
}

func newScheduler(cfg *config.Config) *slots.Scheduler {
	s := cfg.Schedule
	sched, err := slots.New(s.Workdays, s.DayStart, s.DayEnd, s.SlotMinutes)
	if err == nil {
		return sched
	}
	d := config.Default().Schedule
	sched, _ = slots.New(d.Workdays, d.DayStart, d.DayEnd, d.SlotMinutes)
	return sched
}

func stripDays(now time.Time, cfg *config.Config) []time.Time {
	n := 14
	if cfg != nil && cfg.Schedule.DaysAhead > 0 {
		n = cfg.Schedule.DaysAhead
	}
	return dateutil.Days(now, n)
}

func (m Model) newForm() bookingForm {
	placeholders := [fieldCount]string{"Nombre del cliente", "Servicio (opcional)", "30, 45m, 1h30"}
	var f bookingForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 80
		ti.Width = 32
		ti.Prompt = ""
		ti.PlaceholderStyle = m.styles.ModalPlaceholderStyle
		ti.TextStyle = m.styles.ModalInputTextStyle
		ti.Cursor.Style = m.styles.ModalInputCursorStyle
		f.inputs[i] = ti
	}
	f.inputs[fieldDuration].CharLimit = 8
	f.inputs[fieldDuration].SetValue(input.FormatDuration(m.config.Schedule.DefaultDuration))
	return f
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit || m.repo == nil {
		return nil
	}
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	if len(m.days) == 0 {
		return nil
	}
	return commands.LoadRange(m.repo, m.days[0], m.days[len(m.days)-1])
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo appointment.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		if !state.NeedsInit {
			repo, err = openRepo(state.DBPath)
			if err != nil {
				return err
			}
		}
	}

	model := New(repo, cfg, WithInitState(initState))
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if initialRepo == nil {
		if m, ok := finalModel.(Model); ok && m.repo != nil {
			_ = m.repo.Close()
		} else if repo != nil {
			_ = repo.Close()
		}
	}
	return err
}

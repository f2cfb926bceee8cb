// Package ui implements the turnogo command line.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/config"
	"github.com/turnogo/turnogo/internal/dateutil"
	"github.com/turnogo/turnogo/internal/db"
	"github.com/turnogo/turnogo/internal/logging"
	"github.com/turnogo/turnogo/internal/slots"
	"github.com/turnogo/turnogo/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo      appointment.Repository
	ownsRepo  bool
	config    *config.Config
	root      *cobra.Command
	debug     bool
	clock     dateutil.Clock
	formatter *agenda.Formatter
	out       io.Writer
	logger    zerolog.Logger
	logCloser io.Closer
}

// Option configures an App.
type Option func(*App)

// WithClock pins the clock used to resolve "today" and "now".
func WithClock(clock dateutil.Clock) Option {
	return func(a *App) {
		a.clock = clock
		a.formatter = agenda.NewFormatter(clock)
	}
}

// WithOutput redirects command output.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path.
func NewApp(repo appointment.Repository, cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		repo:      repo,
		config:    cfg,
		clock:     dateutil.SystemClock,
		formatter: agenda.NewFormatter(dateutil.SystemClock),
		out:       os.Stdout,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "turnogo",
		Short: "A terminal appointment book",
		Long: `TurnoGo keeps a small business's appointment book in the terminal.

Run without arguments to open the interactive agenda, or use the
subcommands to book, cancel and list appointments from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The TUI owns the terminal and keeps its own debug log.
			if cmd == a.root {
				return nil
			}
			return a.setupLogging(cmd.ErrOrStderr())
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}
	a.root.SetOut(a.out)

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.bookCmd())
	a.root.AddCommand(a.cancelCmd())
	a.root.AddCommand(a.rescheduleCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.slotsCmd())
	a.root.AddCommand(a.daysCmd())
	a.root.AddCommand(a.fmtCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "turnogo %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) setupLogging(w io.Writer) error {
	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	}
	logger, closer, err := logging.Setup(logging.Options{
		Level:  level,
		File:   a.config.Log.File,
		Writer: w,
	})
	if err != nil {
		return err
	}
	a.logger = logger.With().Str("component", "cli").Logger()
	a.logCloser = closer
	return nil
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if path == "" {
		return errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	a.logger.Debug().Str("db_path", path).Msg("opened database")
	return nil
}

func (a *App) scheduler() (*slots.Scheduler, error) {
	s := a.config.Schedule
	sched, err := slots.New(s.Workdays, s.DayStart, s.DayEnd, s.SlotMinutes)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	return sched, nil
}

// Close releases the database and log file opened by the App.
func (a *App) Close() error {
	var errs []error
	if a.ownsRepo && a.repo != nil {
		errs = append(errs, a.repo.Close())
		a.repo = nil
		a.ownsRepo = false
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	return errors.Join(errs...)
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

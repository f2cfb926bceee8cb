// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/turnogo/turnogo/internal/clocktime"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// ScheduleConfig holds opening hours and slot settings.
type ScheduleConfig struct {
	Workdays        []string `toml:"workdays"`         // e.g., ["monday", "tuesday", ...]
	DayStart        string   `toml:"day_start"`        // e.g., "09:00"
	DayEnd          string   `toml:"day_end"`          // e.g., "18:00"
	SlotMinutes     int      `toml:"slot_minutes"`     // grid step, e.g. 15
	DefaultDuration int      `toml:"default_duration"` // minutes, e.g. 30
	DaysAhead       int      `toml:"days_ahead"`       // length of the day strip
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "turno", "noche", "claro"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // empty means stderr
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Workdays:        []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DayStart:        "09:00",
			DayEnd:          "18:00",
			SlotMinutes:     15,
			DefaultDuration: 30,
			DaysAhead:       14,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "turno",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "turnogo.db"
	}
	return filepath.Join(home, ".local", "share", "turnogo", "turnogo.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "turnogo", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies TURNOGO_* environment variables on top of the
// file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TURNOGO_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("TURNOGO_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("TURNOGO_WORKDAYS"); v != "" {
		days := strings.Split(v, ",")
		for i := range days {
			days[i] = strings.TrimSpace(days[i])
		}
		cfg.Schedule.Workdays = days
	}
	if err := intEnv("TURNOGO_SLOT_MINUTES", &cfg.Schedule.SlotMinutes); err != nil {
		return err
	}
	if err := intEnv("TURNOGO_DEFAULT_DURATION", &cfg.Schedule.DefaultDuration); err != nil {
		return err
	}
	if err := intEnv("TURNOGO_DAYS_AHEAD", &cfg.Schedule.DaysAhead); err != nil {
		return err
	}
	if v := os.Getenv("TURNOGO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TURNOGO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TURNOGO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TURNOGO_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

func intEnv(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	*dst = n
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	start, err := validateTime(c.Schedule.DayStart, "day_start")
	if err != nil {
		return err
	}
	end, err := validateTime(c.Schedule.DayEnd, "day_end")
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return errors.New("day_start must be before day_end")
	}

	slot := c.Schedule.SlotMinutes
	if slot < 5 || slot > 120 {
		return fmt.Errorf("slot_minutes must be between 5 and 120, got %d", slot)
	}
	if 60%slot != 0 && slot%60 != 0 {
		return fmt.Errorf("slot_minutes must divide an hour or be whole hours, got %d", slot)
	}
	if c.Schedule.DefaultDuration <= 0 || c.Schedule.DefaultDuration > end.Minutes()-start.Minutes() {
		return fmt.Errorf("default_duration must fit within opening hours, got %d", c.Schedule.DefaultDuration)
	}
	if c.Schedule.DaysAhead < 1 || c.Schedule.DaysAhead > 60 {
		return fmt.Errorf("days_ahead must be between 1 and 60, got %d", c.Schedule.DaysAhead)
	}

	if len(c.Schedule.Workdays) == 0 {
		return errors.New("at least one workday must be configured")
	}
	for _, day := range c.Schedule.Workdays {
		if !isValidWeekday(day) {
			return fmt.Errorf("invalid workday: %s", day)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

func validateTime(t, field string) (clocktime.Time, error) {
	ct, err := clocktime.Parse(t)
	if err != nil {
		return clocktime.Time{}, fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return ct, nil
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func isValidWeekday(day string) bool {
	return validWeekdays[strings.ToLower(strings.TrimSpace(day))]
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

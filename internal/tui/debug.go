package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/turnogo/turnogo/internal/logging"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "turnogo-debug.log"

var (
	debugLog    = zerolog.Nop()
	debugCloser io.Closer
)

// InitDebugLogger starts JSON-lines debug logging to DebugLogPath when
// enabled. Logging never goes to the terminal while the TUI owns it.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = zerolog.Nop()
		return nil
	}

	logger, closer, err := logging.Setup(logging.Options{Level: "debug", File: DebugLogPath})
	if err != nil {
		return err
	}
	debugLog = logger.With().Str("component", "tui").Logger()
	debugCloser = closer
	debugLog.Debug().Str("event", "debug_start").Str("log_file", DebugLogPath).Msg("")
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugCloser == nil {
		return
	}
	debugLog.Debug().Str("event", "debug_end").Msg("")
	_ = debugCloser.Close()
	debugCloser = nil
	debugLog = zerolog.Nop()
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Debug().Str("event", "key_press").Str("key", msg.String()).Msg("")
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	debugLog.Debug().
		Str("event", "mode_change").
		Stringer("from", from).
		Stringer("to", to).
		Str("reason", reason).
		Msg("")
}

// LogCursorMove logs cursor movement across the day strip and slot grid.
func LogCursorMove(day time.Time, slot int, reason string) {
	debugLog.Debug().
		Str("event", "cursor_move").
		Str("day", day.Format("2006-01-02")).
		Int("slot", slot).
		Str("reason", reason).
		Msg("")
}

// LogLoaded logs a finished appointment load.
func LogLoaded(start, end time.Time, count int) {
	debugLog.Debug().
		Str("event", "appointments_loaded").
		Str("start", start.Format("2006-01-02")).
		Str("end", end.Format("2006-01-02")).
		Int("count", count).
		Msg("")
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.Error().Str("event", "error").Str("context", context).Err(err).Msg("")
}

// Package logging wraps charmbracelet/log with the level handling and
// field names shared across solidhunter.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide logger
var (
	std     *log.Logger
	stdOnce sync.Once
	stdMu   sync.RWMutex
)

// Default returns the process-wide logger, an info-level stderr logger
// unless SetDefault replaced it.
func Default() *log.Logger {
	stdOnce.Do(func() {
		stdMu.Lock()
		defer stdMu.Unlock()
		if std == nil {
			std = New("info")
		}
	})

	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	stdOnce.Do(func() {})

	stdMu.Lock()
	defer stdMu.Unlock()
	std = logger
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing logfmt-style lines to w, without
// timestamps or caller info.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive returns the stderr logger used by watch mode: timestamped
// and prefixed, since its lines interleave with repeated reports.
func NewInteractive(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "solidhunter",
		Level:           level,
	})
}

// ParseLevel maps debug, info, warn (or warning) and error to a level.
// Anything else is info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

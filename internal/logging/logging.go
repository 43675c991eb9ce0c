// Package logging builds the charmbracelet loggers used by the hosts.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hopper/internal/games/runner"
)

// New creates a logger writing to w with timestamps and the given prefix.
func New(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// ParseLevel parses a level name. An empty name means info.
func ParseLevel(name string) (log.Level, error) {
	if name == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(name))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

// Lifecycle returns a notifier that logs every lifecycle transition.
// Runs that end are logged at info level, the rest at debug.
func Lifecycle(logger *log.Logger, keyvals ...any) runner.Notifier {
	return runner.NotifierFunc(func(ev runner.Event) {
		fields := append([]any{
			"from", ev.From,
			"to", ev.To,
			"reason", ev.Reason,
			"score", ev.Score,
		}, keyvals...)

		if ev.To == runner.StateEnded {
			logger.Info("run ended", fields...)
			return
		}
		logger.Debug("lifecycle", fields...)
	})
}

package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger. Debug level is gated on --verbose;
// the default hides everything below Warn so JSON output stays clean.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func (app *App) logger(w io.Writer) *log.Logger {
	return newLogger(w, app.Verbose)
}

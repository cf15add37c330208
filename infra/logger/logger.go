package logger

import (
	"io"
	"os"

	corelogger "github.com/kilianp07/offshore/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.NopLogger

// output receives every logger created by New. The interactive console moves
// it to stderr so log lines do not interleave with command output.
var output io.Writer = os.Stdout

// SetOutput changes the writer used by loggers created afterwards.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	output = w
}

// New returns a Logger for the given component. The environment is detected via
// the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component, output)
}

package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures charmbracelet/log with pretty console output on stderr
func SetupLogger(debug bool) *log.Logger {
	return NewLogger(os.Stderr, debug)
}

// NewLogger builds the console logger used by every command
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// SetupStructuredLogger configures logfmt output on stderr for non-interactive use
func SetupStructuredLogger(debug bool) *log.Logger {
	return NewStructuredLogger(os.Stderr, debug)
}

// NewStructuredLogger emits one logfmt record per line with RFC 3339 timestamps
func NewStructuredLogger(w io.Writer, debug bool) *log.Logger {
	logger := NewLogger(w, debug)
	logger.SetFormatter(log.LogfmtFormatter)
	logger.SetTimeFormat(time.RFC3339Nano)
	return logger
}

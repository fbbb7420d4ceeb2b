// Package logx builds the charmbracelet/log loggers used across autotab.
package logx

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Level      log.Level
	Timestamps bool
	Caller     bool
	JSON       bool
}

// New creates a logger writing to w with the given prefix.
// A nil w writes to stderr.
func New(w io.Writer, prefix string, opt Options) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	f := log.TextFormatter
	if opt.JSON {
		f = log.JSONFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           opt.Level,
		ReportCaller:    opt.Caller,
		ReportTimestamp: opt.Timestamps,
		Formatter:       f,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// ParseLevel maps a level name to a log.Level. Unknown names map to info.
func ParseLevel(name string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

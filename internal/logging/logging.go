// Package logging builds the charmbracelet/log logger shared by the server
// and the CLI.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Options selects level, output format and an optional prefix.
type Options struct {
	Level  string // debug, info, warn, error, fatal; "" means info
	Format string // text or json; "" means text
	Prefix string
}

// New returns a logger writing to w. An unknown level falls back to info.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.InfoLevel
	if opts.Level != "" {
		if l, err := log.ParseLevel(opts.Level); err == nil {
			level = l
		}
	}

	lo := log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}
	if opts.Format == "json" {
		lo.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, lo)
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

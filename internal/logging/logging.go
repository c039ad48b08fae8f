// Package logging configures the stderr debug logger shared by prefy
// packages. User-facing progress output does not go through this logger;
// stages print it to the io.Writer they are given.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/prefy/pkg/types"
)

// ParseLevel maps a config string to a log level. Unknown values fall back
// to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter maps a config string to a formatter. Unknown values fall
// back to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// New returns a logger writing to w with the configured level and format.
func New(w io.Writer, cfg types.LogConfig) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     ParseLevel(cfg.Level),
		Formatter: ParseFormatter(cfg.Format),
		Prefix:    "prefy",
	})
}

// Setup installs a logger built from cfg as the package-level default used
// by log.Debug and friends.
func Setup(w io.Writer, cfg types.LogConfig) *log.Logger {
	l := New(w, cfg)
	log.SetDefault(l)
	return l
}

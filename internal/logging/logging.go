// Package logging builds the loggers used by the command line tool and
// adapts them to eeprom.Logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/moffa90/go-eeemul/eeprom"
)

// Component is attached to every engine log entry.
const Component = "eeprom"

// Format specifies the output format for logging.
type Format int

// Log format options.
const (
	FormatText   Format = iota // slog text format (default)
	FormatJSON                 // slog JSON format
	FormatLogrus               // logrus text format
)

// String returns the flag value of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatLogrus:
		return "logrus"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses a --log-format flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "logrus":
		return FormatLogrus, nil
	default:
		return 0, fmt.Errorf("unknown log format %q (want text, json or logrus)", s)
	}
}

// ParseLevel parses a --log-level flag value (debug, info, warn, error).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger creates an engine logger writing to w in the given format.
// Entries below level are dropped.
func NewLogger(w io.Writer, format Format, level slog.Level) eeprom.Logger {
	if format == FormatLogrus {
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(logrusLevel(level))
		return Logrus(l)
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return Slog(slog.New(slog.NewJSONHandler(w, opts)))
	}
	return Slog(slog.New(slog.NewTextHandler(w, opts)))
}

// logrusLevel maps a slog level to the closest logrus level.
func logrusLevel(level slog.Level) logrus.Level {
	switch {
	case level <= slog.LevelDebug:
		return logrus.DebugLevel
	case level <= slog.LevelInfo:
		return logrus.InfoLevel
	case level <= slog.LevelWarn:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}
